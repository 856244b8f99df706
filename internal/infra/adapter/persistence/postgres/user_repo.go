package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/infra/db"
	"techup-blog/internal/repository"
)

type UserRepo struct {
	conn *sqlx.DB
}

func NewUserRepo(conn *sqlx.DB) repository.UserRepository {
	return &UserRepo{conn: conn}
}

type userRow struct {
	ID         uuid.UUID `db:"id"`
	Username   string    `db:"username"`
	Name       string    `db:"name"`
	Role       string    `db:"role"`
	ProfilePic string    `db:"profile_pic"`
}

func (repo *UserRepo) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	const query = `
SELECT id, username, name, role, COALESCE(profile_pic, '') AS profile_pic
FROM users
WHERE id = $1`

	var row userRow
	err := sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &entity.User{
		ID:         row.ID,
		Username:   row.Username,
		Name:       row.Name,
		Role:       entity.Role(row.Role),
		ProfilePic: row.ProfilePic,
	}, nil
}

func (repo *UserRepo) GetRole(ctx context.Context, id uuid.UUID) (entity.Role, error) {
	var role string
	err := sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &role, `SELECT role FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("GetRole: %w", entity.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("GetRole: %w", err)
	}
	return entity.Role(role), nil
}

func (repo *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("UsernameExists: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query, args, err := psql.Insert("users").
		Columns("id", "username", "name", "role").
		Values(user.ID, user.Username, user.Name, string(user.Role)).
		ToSql()
	if err != nil {
		return fmt.Errorf("Create: build: %w", err)
	}
	if _, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...); err != nil {
		return classify("Create", err)
	}
	return nil
}

func (repo *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update repository.ProfileUpdate) error {
	query, args, err := BuildProfileUpdate(id, update)
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}

	res, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...)
	if err != nil {
		return classify("UpdateProfile", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateProfile: %w", entity.ErrNotFound)
	}
	return nil
}

// BuildProfileUpdate renders an UPDATE touching only the set fields, in the
// fixed order name, username, profile_pic. Every value is a bound parameter.
func BuildProfileUpdate(id uuid.UUID, update repository.ProfileUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, entity.ErrInvalidInput
	}

	b := psql.Update("users")
	if update.Name != nil {
		b = b.Set("name", *update.Name)
	}
	if update.Username != nil {
		b = b.Set("username", *update.Username)
	}
	if update.ProfilePic != nil {
		b = b.Set("profile_pic", *update.ProfilePic)
	}
	return b.Where(sq.Eq{"id": id}).ToSql()
}
