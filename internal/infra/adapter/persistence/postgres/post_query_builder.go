// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/repository"
)

const postColumns = `p.id, p.title, p.image, p.category_id, p.description, p.content, p.status_id, p.date,
       c.name AS category, s.status`

const postFrom = `
FROM posts p
INNER JOIN categories c ON p.category_id = c.id
INNER JOIN statuses s ON p.status_id = s.id`

// PostQueryBuilder builds the listing and count statements for posts.
// The WHERE clause is shared between both so they always agree on the rows they see.
// The published gate is a literal, so only client-supplied filters become parameters.
type PostQueryBuilder struct{}

// NewPostQueryBuilder creates a new query builder instance.
func NewPostQueryBuilder() *PostQueryBuilder {
	return &PostQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause and its arguments.
// Parameter order is fixed: category (if set) then keyword (if set).
// Returns an empty clause in admin mode with no filters.
func (qb *PostQueryBuilder) BuildWhereClause(filter repository.PostFilter) (clause string, args []any) {
	var conditions []string

	if filter.Visibility == repository.VisibilityPublished {
		conditions = append(conditions, fmt.Sprintf("p.status_id = %d", entity.StatusPublished))
	}

	if category := strings.TrimSpace(filter.Category); category != "" {
		args = append(args, containsPattern(category))
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE $%d", len(args)))
	}

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, containsPattern(keyword))
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d OR p.content ILIKE $%d)", n, n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildListQuery returns one page of posts. LIMIT and OFFSET are always the last two parameters.
func (qb *PostQueryBuilder) BuildListQuery(filter repository.PostFilter, limit, offset int) (string, []any) {
	where, args := qb.BuildWhereClause(filter)
	n := len(args)
	query := "SELECT " + postColumns + postFrom + "\n" + joinClause(where) +
		fmt.Sprintf("ORDER BY p.date DESC\nLIMIT $%d OFFSET $%d", n+1, n+2)
	return query, append(args, limit, offset)
}

// BuildListAllQuery returns every matching post without pagination.
func (qb *PostQueryBuilder) BuildListAllQuery(filter repository.PostFilter) (string, []any) {
	where, args := qb.BuildWhereClause(filter)
	return "SELECT " + postColumns + postFrom + "\n" + joinClause(where) + "ORDER BY p.date DESC", args
}

// BuildCountQuery counts the rows BuildListQuery pages through. It has no ORDER BY, LIMIT or OFFSET.
func (qb *PostQueryBuilder) BuildCountQuery(filter repository.PostFilter) (string, []any) {
	where, args := qb.BuildWhereClause(filter)
	return strings.TrimRight("SELECT COUNT(*)"+postFrom+"\n"+joinClause(where), "\n"), args
}

func joinClause(where string) string {
	if where == "" {
		return ""
	}
	return where + "\n"
}

// containsPattern wraps s in % after escaping the ILIKE metacharacters.
func containsPattern(s string) string {
	return "%" + escapeILIKE(s) + "%"
}

var ilikeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeILIKE(s string) string {
	return ilikeEscaper.Replace(s)
}
