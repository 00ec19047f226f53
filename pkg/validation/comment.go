package validation

// CommentBodySchema - текст комментария.
var CommentBodySchema = TextSchema(registry.LongText, fieldCommentBody)

// NewComment - данные нового комментария.
type NewComment struct {
	Body string `json:"body"`
}

// AddComment - тело запроса {"comment": {...}}.
type AddComment struct {
	Comment NewComment `json:"comment"`
}

// GetCommentsQuery - параметры списка комментариев.
type GetCommentsQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

var commentsLimit = LimitSchema(DefaultCommentsLimit)

// AddCommentSchema - схема добавления комментария.
var AddCommentSchema = objectSchema(func(o *objectReader) AddComment {
	comment := nested(o, "comment", func(c *objectReader) NewComment {
		return NewComment{Body: field(c, "body", CommentBodySchema)}
	})
	return AddComment{Comment: comment}
})

// GetCommentsQuerySchema - пагинация комментариев, limit по умолчанию 10.
var GetCommentsQuerySchema = objectSchema(func(o *objectReader) GetCommentsQuery {
	return GetCommentsQuery{
		Limit:  field(o, "limit", commentsLimit),
		Offset: field(o, "offset", articlesOffset),
	}
})

// ValidateAddComment проверяет тело запроса добавления комментария.
func ValidateAddComment(data any) Result[AddComment] {
	return Parse(AddCommentSchema, data)
}

// ValidateGetCommentsQuery проверяет параметры списка комментариев.
func ValidateGetCommentsQuery(data any) Result[GetCommentsQuery] {
	return Parse(GetCommentsQuerySchema, data)
}
