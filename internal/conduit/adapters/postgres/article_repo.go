package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/db/postgres"
	"conduit/pkg/logger"
)

const constraintArticlesSlug = "articles_slug_key"

// articleSelect выбирает статью с автором и данными читателя; $1 - ID читателя или NULL.
const articleSelect = `
        SELECT a.id, a.slug, a.title, a.description, a.body, a.created_at, a.updated_at,
               u.id, u.username, u.bio, u.image,
               COALESCE((SELECT array_agg(t.tag ORDER BY t.tag) FROM article_tags t WHERE t.article_id = a.id), '{}') AS tag_list,
               (SELECT COUNT(*) FROM article_favorites f WHERE f.article_id = a.id) AS favorites_count,
               EXISTS (SELECT 1 FROM article_favorites f WHERE f.article_id = a.id AND f.user_id = $1::uuid) AS favorited,
               EXISTS (SELECT 1 FROM user_follows uf WHERE uf.following_id = u.id AND uf.follower_id = $1::uuid) AS following
        FROM articles a
        JOIN users u ON u.id = a.author_id
`

// ArticleRepository реализует repositories.ArticleRepository.
type ArticleRepository struct {
	pool PgxPoolInterface
}

// NewArticleRepository создает новый экземпляр репозитория статей.
func NewArticleRepository(pool PgxPoolInterface) repositories.ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func scanArticle(row pgx.Row) (*entities.Article, error) {
	article := entities.Article{Author: &entities.Profile{}}
	err := row.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&article.Body,
		&article.CreatedAt,
		&article.UpdatedAt,
		&article.Author.ID,
		&article.Author.Username,
		&article.Author.Bio,
		&article.Author.Image,
		&article.TagList,
		&article.FavoritesCount,
		&article.Favorited,
		&article.Author.Following,
	)
	if err != nil {
		return nil, err
	}
	article.AuthorID = article.Author.ID
	if article.TagList == nil {
		article.TagList = []string{}
	}
	return &article, nil
}

// FindBySlug находит статью по slug.
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug, viewerID string) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("repository", "article"), zap.String("method", "FindBySlug"))

	query := articleSelect + ` WHERE a.slug = $2`

	article, err := scanArticle(r.pool.QueryRow(ctx, query, nullableID(viewerID), slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "article not found", zap.String("slug", slug))
			return nil, entities.ErrArticleNotFound
		}
		log.Error(ctx, "error finding article", zap.Error(err))
		return nil, fmt.Errorf("error querying article by slug: %w", err)
	}
	return article, nil
}

// articleConditions строит условие WHERE для фильтра, нумеруя аргументы начиная с first.
func articleConditions(filter entities.ArticleFilter, first int) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		placeholder := "$" + strconv.Itoa(first+len(args))
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "$?", placeholder))
	}

	if filter.Tag != nil {
		add(`EXISTS (SELECT 1 FROM article_tags t WHERE t.article_id = a.id AND t.tag = $?)`, *filter.Tag)
	}
	if filter.Author != nil {
		add(`u.username = $?`, *filter.Author)
	}
	if filter.Favorited != nil {
		add(`EXISTS (SELECT 1 FROM article_favorites f JOIN users fu ON fu.id = f.user_id
                WHERE f.article_id = a.id AND fu.username = $?)`, *filter.Favorited)
	}
	if filter.FeedOf != "" {
		add(`a.author_id IN (SELECT following_id FROM user_follows WHERE follower_id = $?)`, filter.FeedOf)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List возвращает страницу статей, от новых к старым, и общее количество.
func (r *ArticleRepository) List(ctx context.Context, filter entities.ArticleFilter) (*entities.ArticlePage, error) {
	log := logger.Log(ctx).With(zap.String("repository", "article"), zap.String("method", "List"))

	where, args := articleConditions(filter, 1)
	countQuery := `SELECT COUNT(*) FROM articles a JOIN users u ON u.id = a.author_id` + where

	var count int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		log.Error(ctx, "error counting articles", zap.Error(err))
		return nil, fmt.Errorf("error counting articles: %w", err)
	}

	where, args = articleConditions(filter, 2)
	args = append([]any{nullableID(filter.ViewerID)}, args...)
	listQuery := articleSelect + where +
		` ORDER BY a.created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		log.Error(ctx, "error listing articles", zap.Error(err))
		return nil, fmt.Errorf("error listing articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*entities.Article, 0, filter.Limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			log.Error(ctx, "error scanning article", zap.Error(err))
			return nil, fmt.Errorf("error scanning article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating articles", zap.Error(err))
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return &entities.ArticlePage{Articles: articles, Count: count}, nil
}

// Create сохраняет статью и ее теги в одной транзакции.
func (r *ArticleRepository) Create(ctx context.Context, article *entities.Article) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("repository", "article"), zap.String("method", "Create"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer rollback(ctx, tx)

	query := `
        INSERT INTO articles (slug, title, description, body, author_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `

	created := *article
	err = tx.QueryRow(ctx, query,
		article.Slug,
		article.Title,
		article.Description,
		article.Body,
		article.AuthorID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, constraintArticlesSlug) {
			log.Debug(ctx, "slug already exists", zap.String("slug", article.Slug))
			return nil, entities.ErrSlugTaken
		}
		log.Error(ctx, "error creating article", zap.Error(err))
		return nil, fmt.Errorf("error creating article: %w", err)
	}

	if err := insertTags(ctx, tx, created.ID, article.TagList); err != nil {
		log.Error(ctx, "error storing tags", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing article", zap.Error(err))
		return nil, fmt.Errorf("error committing article: %w", err)
	}

	if created.TagList == nil {
		created.TagList = []string{}
	}
	return &created, nil
}

// Update обновляет статью; TagList == nil оставляет теги без изменений.
func (r *ArticleRepository) Update(ctx context.Context, article *entities.Article) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("repository", "article"), zap.String("method", "Update"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer rollback(ctx, tx)

	query := `
        UPDATE articles
        SET slug = $2, title = $3, description = $4, body = $5, updated_at = $6
        WHERE id = $1
        RETURNING updated_at
    `

	updated := *article
	err = tx.QueryRow(ctx, query,
		article.ID,
		article.Slug,
		article.Title,
		article.Description,
		article.Body,
		time.Now().UTC(),
	).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "article not found for update", zap.String("id", article.ID))
			return nil, entities.ErrArticleNotFound
		}
		if postgres.IsUniqueViolation(err, constraintArticlesSlug) {
			log.Debug(ctx, "slug already exists", zap.String("slug", article.Slug))
			return nil, entities.ErrSlugTaken
		}
		log.Error(ctx, "error updating article", zap.Error(err))
		return nil, fmt.Errorf("error updating article: %w", err)
	}

	if article.TagList != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, article.ID); err != nil {
			log.Error(ctx, "error clearing tags", zap.Error(err))
			return nil, fmt.Errorf("error clearing tags: %w", err)
		}
		if err := insertTags(ctx, tx, article.ID, article.TagList); err != nil {
			log.Error(ctx, "error storing tags", zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing article", zap.Error(err))
		return nil, fmt.Errorf("error committing article: %w", err)
	}

	return &updated, nil
}

// Delete удаляет статью вместе с комментариями, тегами и избранным.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "article"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting article", zap.Error(err))
		return fmt.Errorf("error deleting article: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "article not found for deletion", zap.String("id", id))
		return entities.ErrArticleNotFound
	}
	return nil
}

// Favorite добавляет статью в избранное пользователя.
func (r *ArticleRepository) Favorite(ctx context.Context, userID, articleID string) error {
	query := `
        INSERT INTO article_favorites (user_id, article_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, article_id) DO NOTHING
    `
	if _, err := r.pool.Exec(ctx, query, userID, articleID); err != nil {
		logger.Log(ctx).Error(ctx, "error favoriting article", zap.String("method", "Favorite"), zap.Error(err))
		return fmt.Errorf("error favoriting article: %w", err)
	}
	return nil
}

// Unfavorite убирает статью из избранного пользователя.
func (r *ArticleRepository) Unfavorite(ctx context.Context, userID, articleID string) error {
	query := `DELETE FROM article_favorites WHERE user_id = $1 AND article_id = $2`
	if _, err := r.pool.Exec(ctx, query, userID, articleID); err != nil {
		logger.Log(ctx).Error(ctx, "error unfavoriting article", zap.String("method", "Unfavorite"), zap.Error(err))
		return fmt.Errorf("error unfavoriting article: %w", err)
	}
	return nil
}

func insertTags(ctx context.Context, tx pgx.Tx, articleID string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	query := `
        INSERT INTO article_tags (article_id, tag)
        SELECT $1, unnest($2::varchar[])
        ON CONFLICT (article_id, tag) DO NOTHING
    `
	if _, err := tx.Exec(ctx, query, articleID, tags); err != nil {
		return fmt.Errorf("error storing tags: %w", err)
	}
	return nil
}

// rollback откатывает транзакцию; после Commit это no-op.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Log(ctx).Debug(ctx, "transaction rollback failed", zap.Error(err))
	}
}
