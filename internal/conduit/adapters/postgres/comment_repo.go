package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"conduit/internal/conduit/domain/entities"
	"conduit/internal/conduit/ports/repositories"
	"conduit/pkg/logger"
)

// commentSelect выбирает комментарий с автором; $1 - ID читателя или NULL.
const commentSelect = `
        SELECT c.id, c.body, c.article_id, c.created_at, c.updated_at,
               u.id, u.username, u.bio, u.image,
               EXISTS (SELECT 1 FROM user_follows uf WHERE uf.following_id = u.id AND uf.follower_id = $1::uuid) AS following
        FROM comments c
        JOIN users u ON u.id = c.author_id
`

// CommentRepository реализует repositories.CommentRepository.
type CommentRepository struct {
	pool PgxPoolInterface
}

// NewCommentRepository создает новый экземпляр репозитория комментариев.
func NewCommentRepository(pool PgxPoolInterface) repositories.CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*entities.Comment, error) {
	comment := entities.Comment{Author: &entities.Profile{}}
	err := row.Scan(
		&comment.ID,
		&comment.Body,
		&comment.ArticleID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.Author.ID,
		&comment.Author.Username,
		&comment.Author.Bio,
		&comment.Author.Image,
		&comment.Author.Following,
	)
	if err != nil {
		return nil, err
	}
	comment.AuthorID = comment.Author.ID
	return &comment, nil
}

// Create сохраняет комментарий. Автор в результате не заполняется.
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Create"))

	query := `
        INSERT INTO comments (body, author_id, article_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `

	created := *comment
	err := r.pool.QueryRow(ctx, query, comment.Body, comment.AuthorID, comment.ArticleID).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Error(ctx, "error creating comment", zap.Error(err))
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	return &created, nil
}

// FindByID находит комментарий по ID.
func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "FindByID"))

	comment, err := scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $2`, nil, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "comment not found", zap.String("id", id))
			return nil, entities.ErrCommentNotFound
		}
		log.Error(ctx, "error finding comment", zap.Error(err))
		return nil, fmt.Errorf("error querying comment by id: %w", err)
	}
	return comment, nil
}

// ListByArticle возвращает комментарии статьи, от новых к старым.
func (r *CommentRepository) ListByArticle(
	ctx context.Context,
	articleID, viewerID string,
	limit, offset int,
) ([]*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "ListByArticle"))

	query := commentSelect + `
        WHERE c.article_id = $2
        ORDER BY c.created_at DESC
        LIMIT $3 OFFSET $4
    `

	rows, err := r.pool.Query(ctx, query, nullableID(viewerID), articleID, limit, offset)
	if err != nil {
		log.Error(ctx, "error listing comments", zap.Error(err))
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*entities.Comment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			log.Error(ctx, "error scanning comment", zap.Error(err))
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating comments", zap.Error(err))
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Delete удаляет комментарий по ID.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting comment", zap.Error(err))
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "comment not found for deletion", zap.String("id", id))
		return entities.ErrCommentNotFound
	}
	return nil
}
