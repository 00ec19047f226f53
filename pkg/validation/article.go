package validation

import (
	"fmt"
	"strings"
)

// TitleMaxLength - дополнительная граница заголовка поверх ShortText.
const TitleMaxLength = 200

// Сообщения схем статьи.
const (
	msgTitleTooLong  = "Title must be no more than 200 characters"
	msgTagEmpty      = "Tag cannot be empty"
	msgTagTooLong    = "Tag must be no more than %d characters"
	msgTooManyTags   = "Maximum %d tags allowed"
	msgDuplicateTags = "Duplicate tags are not allowed"
	fieldTitle       = "Title"
	fieldDescription = "Description"
	fieldArticleBody = "Article body"
	fieldCommentBody = "Comment"
)

// TitleSchema: ShortText плюс граница в 200 символов.
// TODO: проверка на 200 символов недостижима при ShortText.Max = 100, нужно решить, какая из границ верна.
var TitleSchema = Refine(TextSchema(registry.ShortText, fieldTitle), func(title string) bool {
	return length(title) <= TitleMaxLength
}, msgTitleTooLong)

// DescriptionSchema - описание статьи.
var DescriptionSchema = TextSchema(registry.MediumText, fieldDescription)

// BodySchema - тело статьи.
var BodySchema = TextSchema(registry.VeryLongText, fieldArticleBody)

// tagSchema проверяет один тег без обрезки пробелов.
var tagSchema Schema[string] = SchemaFunc[string](func(path Path, raw any) (string, []Issue) {
	s, issues := expectString(path, raw, "Required")
	if issues != nil {
		return "", issues
	}

	n := length(s)
	if n < 1 {
		return "", []Issue{newIssue(path, CodeTooShort, msgTagEmpty)}
	}
	if n > registry.Tags.MaxTagLength {
		return "", []Issue{newIssue(path, CodeTooLong, fmt.Sprintf(msgTagTooLong, registry.Tags.MaxTagLength))}
	}
	return s, nil
})

// tagItems приводит значение к списку элементов массива.
func tagItems(path Path, raw any) ([]any, []Issue) {
	switch v := raw.(type) {
	case nil:
		return nil, []Issue{newIssue(path, CodeRequired, "Required")}
	case []any:
		return v, nil
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, nil
	default:
		return nil, []Issue{invalidType(path, "array", raw)}
	}
}

// tagListSchema проверяет элементы и размер списка, затем приводит теги к нижнему регистру
// и отклоняет повторы уже среди приведенных значений.
var tagListSchema Schema[[]string] = SchemaFunc[[]string](func(path Path, raw any) ([]string, []Issue) {
	items, issues := tagItems(path, raw)
	if issues != nil {
		return nil, issues
	}

	tags := make([]string, 0, len(items))
	for i, item := range items {
		tag, itemIssues := tagSchema.Parse(path.Index(i), item)
		issues = append(issues, itemIssues...)
		tags = append(tags, tag)
	}
	if len(items) > registry.Tags.MaxItems {
		issues = append(issues, newIssue(path, CodeTooBig, fmt.Sprintf(msgTooManyTags, registry.Tags.MaxItems)))
	}
	if issues != nil {
		return nil, issues
	}

	seen := make(map[string]struct{}, len(tags))
	for i, tag := range tags {
		tag = strings.ToLower(tag)
		tags[i] = tag
		if _, ok := seen[tag]; ok {
			return nil, []Issue{newIssue(path, CodeDuplicate, msgDuplicateTags)}
		}
		seen[tag] = struct{}{}
	}
	return tags, nil
})

// TagListSchema - список тегов статьи, по умолчанию пустой.
var TagListSchema = Default(tagListSchema, func() any { return []any{} })

// NewArticle - данные новой статьи.
type NewArticle struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// CreateArticle - тело запроса создания статьи {"article": {...}}.
type CreateArticle struct {
	Article NewArticle `json:"article"`
}

// ArticleChanges - изменяемые поля статьи; nil означает "не передано".
type ArticleChanges struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Body        *string  `json:"body,omitempty"`
	TagList     []string `json:"tagList,omitempty"`
}

// UpdateArticle - тело запроса обновления статьи {"article": {...}}.
type UpdateArticle struct {
	Article ArticleChanges `json:"article"`
}

// GetArticlesQuery - параметры списка статей.
type GetArticlesQuery struct {
	Tag       *string `json:"tag,omitempty"`
	Author    *string `json:"author,omitempty"`
	Favorited *string `json:"favorited,omitempty"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// GetArticleFeedQuery - параметры ленты.
type GetArticleFeedQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

var (
	optionalTitle       = Optional(TitleSchema)
	optionalDescription = Optional(DescriptionSchema)
	optionalBody        = Optional(BodySchema)
	optionalString      = Optional(StringSchema)
	articlesLimit       = LimitSchema(DefaultLimit)
	articlesOffset      = OffsetSchema()
)

// optionalTagList сохраняет nil для отсутствующего списка, а переданный пустой список
// возвращает как пустой срез.
var optionalTagList Schema[[]string] = SchemaFunc[[]string](func(path Path, raw any) ([]string, []Issue) {
	if raw == nil {
		return nil, nil
	}
	return tagListSchema.Parse(path, raw)
})

// CreateArticleSchema - схема создания статьи; лишние ключи внутри "article" запрещены.
var CreateArticleSchema = objectSchema(func(o *objectReader) CreateArticle {
	article := nested(o, "article", func(a *objectReader) NewArticle {
		return NewArticle{
			Title:       field(a, "title", TitleSchema),
			Description: field(a, "description", DescriptionSchema),
			Body:        field(a, "body", BodySchema),
			TagList:     field(a, "tagList", TagListSchema),
		}
	}, "title", "description", "body", "tagList")
	return CreateArticle{Article: article}
})

// UpdateArticleSchema - все поля необязательны.
var UpdateArticleSchema = objectSchema(func(o *objectReader) UpdateArticle {
	article := nested(o, "article", func(a *objectReader) ArticleChanges {
		return ArticleChanges{
			Title:       field(a, "title", optionalTitle),
			Description: field(a, "description", optionalDescription),
			Body:        field(a, "body", optionalBody),
			TagList:     field(a, "tagList", optionalTagList),
		}
	})
	return UpdateArticle{Article: article}
})

// GetArticlesQuerySchema - фильтры tag/author/favorited и пагинация.
var GetArticlesQuerySchema = objectSchema(func(o *objectReader) GetArticlesQuery {
	return GetArticlesQuery{
		Tag:       field(o, "tag", optionalString),
		Author:    field(o, "author", optionalString),
		Favorited: field(o, "favorited", optionalString),
		Limit:     field(o, "limit", articlesLimit),
		Offset:    field(o, "offset", articlesOffset),
	}
})

// GetArticleFeedQuerySchema - пагинация ленты.
var GetArticleFeedQuerySchema = objectSchema(func(o *objectReader) GetArticleFeedQuery {
	return GetArticleFeedQuery{
		Limit:  field(o, "limit", articlesLimit),
		Offset: field(o, "offset", articlesOffset),
	}
})

// ValidateCreateArticle проверяет тело запроса создания статьи.
func ValidateCreateArticle(data any) Result[CreateArticle] {
	return Parse(CreateArticleSchema, data)
}

// ValidateUpdateArticle проверяет тело запроса обновления статьи.
func ValidateUpdateArticle(data any) Result[UpdateArticle] {
	return Parse(UpdateArticleSchema, data)
}

// ValidateGetArticlesQuery проверяет параметры списка статей.
func ValidateGetArticlesQuery(data any) Result[GetArticlesQuery] {
	return Parse(GetArticlesQuerySchema, data)
}

// ValidateGetArticleFeedQuery проверяет параметры ленты.
func ValidateGetArticleFeedQuery(data any) Result[GetArticleFeedQuery] {
	return Parse(GetArticleFeedQuerySchema, data)
}
