package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/infra/db"
	"techup-blog/internal/repository"
)

type PostRepo struct {
	conn         *sqlx.DB
	queryBuilder *PostQueryBuilder
}

func NewPostRepo(conn *sqlx.DB) repository.PostRepository {
	return &PostRepo{
		conn:         conn,
		queryBuilder: NewPostQueryBuilder(),
	}
}

// postRow mirrors the joined listing columns.
type postRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Image       string    `db:"image"`
	CategoryID  int64     `db:"category_id"`
	Description string    `db:"description"`
	Content     string    `db:"content"`
	StatusID    int64     `db:"status_id"`
	Date        time.Time `db:"date"`
	Category    string    `db:"category"`
	Status      string    `db:"status"`
}

func (r postRow) toEntity() entity.PostView {
	return entity.PostView{
		Post: entity.Post{
			ID:          r.ID,
			Title:       r.Title,
			Image:       r.Image,
			CategoryID:  r.CategoryID,
			Description: r.Description,
			Content:     r.Content,
			StatusID:    entity.PostStatus(r.StatusID),
			Date:        r.Date,
		},
		Category: r.Category,
		Status:   r.Status,
	}
}

func toViews(rows []postRow) []entity.PostView {
	posts := make([]entity.PostView, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toEntity())
	}
	return posts
}

func (repo *PostRepo) ListPage(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]entity.PostView, error) {
	defer timed("posts.list_page")()

	query, args := repo.queryBuilder.BuildListQuery(filter, limit, offset)

	rows := make([]postRow, 0, limit)
	if err := sqlx.SelectContext(ctx, db.Conn(ctx, repo.conn), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return toViews(rows), nil
}

func (repo *PostRepo) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	defer timed("posts.count")()

	query, args := repo.queryBuilder.BuildCountQuery(filter)

	var count int64
	if err := sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &count, query, args...); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *PostRepo) List(ctx context.Context, filter repository.PostFilter) ([]entity.PostView, error) {
	defer timed("posts.list")()

	query, args := repo.queryBuilder.BuildListAllQuery(filter)

	var rows []postRow
	if err := sqlx.SelectContext(ctx, db.Conn(ctx, repo.conn), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return toViews(rows), nil
}

func (repo *PostRepo) Get(ctx context.Context, id int64, visibility repository.PostVisibility) (*entity.PostView, error) {
	defer timed("posts.get")()

	query := "SELECT " + postColumns + postFrom + "\nWHERE p.id = $1"
	if visibility == repository.VisibilityPublished {
		query += fmt.Sprintf(" AND p.status_id = %d", entity.StatusPublished)
	}

	var row postRow
	err := sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	post := row.toEntity()
	return &post, nil
}

func (repo *PostRepo) Create(ctx context.Context, post *entity.Post) error {
	defer timed("posts.create")()

	const query = `
INSERT INTO posts (title, image, category_id, description, content, status_id, date)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING id, date`
	err := db.Conn(ctx, repo.conn).QueryRowxContext(ctx, query,
		post.Title, post.Image, post.CategoryID, post.Description, post.Content, int64(post.StatusID),
	).Scan(&post.ID, &post.Date)
	if err != nil {
		return classify("Create", err)
	}
	return nil
}

func (repo *PostRepo) Update(ctx context.Context, post *entity.Post) error {
	defer timed("posts.update")()

	const query = `
UPDATE posts
SET title = $2, image = $3, category_id = $4, description = $5, content = $6, status_id = $7, date = now()
WHERE id = $1
RETURNING date`
	err := db.Conn(ctx, repo.conn).QueryRowxContext(ctx, query,
		post.ID, post.Title, post.Image, post.CategoryID, post.Description, post.Content, int64(post.StatusID),
	).Scan(&post.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if err != nil {
		return classify("Update", err)
	}
	return nil
}

func (repo *PostRepo) Delete(ctx context.Context, id int64) error {
	defer timed("posts.delete")()

	res, err := db.Conn(ctx, repo.conn).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}
