package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/infra/db"
	"techup-blog/internal/repository"
)

type CategoryRepo struct {
	conn *sqlx.DB
}

func NewCategoryRepo(conn *sqlx.DB) repository.CategoryRepository {
	return &CategoryRepo{conn: conn}
}

type categoryRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	query, args, err := psql.Select("id", "name").From("categories").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("List: build: %w", err)
	}

	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, db.Conn(ctx, repo.conn), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	categories := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &entity.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	query, args, err := psql.Select("id", "name").From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("Get: build: %w", err)
	}

	var row categoryRow
	err = sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &entity.Category{ID: row.ID, Name: row.Name}, nil
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query, args, err := psql.Insert("categories").
		Columns("name").
		Values(category.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("Create: build: %w", err)
	}

	if err := db.Conn(ctx, repo.conn).QueryRowxContext(ctx, query, args...).Scan(&category.ID); err != nil {
		return classify("Create", err)
	}
	return nil
}

func (repo *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query, args, err := psql.Update("categories").
		Set("name", category.Name).
		Where(sq.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("Update: build: %w", err)
	}

	res, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...)
	if err != nil {
		return classify("Update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *CategoryRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("Delete: build: %w", err)
	}

	res, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return fmt.Errorf("Delete: %w: %w", entity.ErrReferenced, err)
		}
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}
