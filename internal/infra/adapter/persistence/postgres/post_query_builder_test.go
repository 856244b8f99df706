package postgres_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"techup-blog/internal/infra/adapter/persistence/postgres"
	"techup-blog/internal/repository"
)

/* ──────────────────────────── BuildWhereClause ──────────────────────────── */

func TestPostQueryBuilder_BuildWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     repository.PostFilter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "public without filters",
			filter:     repository.PostFilter{},
			wantClause: "WHERE p.status_id = 2",
		},
		{
			name:       "admin without filters",
			filter:     repository.PostFilter{Visibility: repository.VisibilityAll},
			wantClause: "",
		},
		{
			name:       "category only",
			filter:     repository.PostFilter{Category: "tech"},
			wantClause: "WHERE p.status_id = 2 AND c.name ILIKE $1",
			wantArgs:   []any{"%tech%"},
		},
		{
			name:       "keyword only",
			filter:     repository.PostFilter{Keyword: "ai"},
			wantClause: "WHERE p.status_id = 2 AND (p.title ILIKE $1 OR p.description ILIKE $1 OR p.content ILIKE $1)",
			wantArgs:   []any{"%ai%"},
		},
		{
			name:       "category before keyword",
			filter:     repository.PostFilter{Keyword: "ai", Category: "tech"},
			wantClause: "WHERE p.status_id = 2 AND c.name ILIKE $1 AND (p.title ILIKE $2 OR p.description ILIKE $2 OR p.content ILIKE $2)",
			wantArgs:   []any{"%tech%", "%ai%"},
		},
		{
			name:       "admin keeps filters",
			filter:     repository.PostFilter{Category: "tech", Visibility: repository.VisibilityAll},
			wantClause: "WHERE c.name ILIKE $1",
			wantArgs:   []any{"%tech%"},
		},
		{
			name:       "blank filters ignored",
			filter:     repository.PostFilter{Category: "  ", Keyword: ""},
			wantClause: "WHERE p.status_id = 2",
		},
		{
			name:       "ILIKE metacharacters escaped",
			filter:     repository.PostFilter{Keyword: `50%_off\`},
			wantClause: "WHERE p.status_id = 2 AND (p.title ILIKE $1 OR p.description ILIKE $1 OR p.content ILIKE $1)",
			wantArgs:   []any{`%50\%\_off\\%`},
		},
	}

	builder := postgres.NewPostQueryBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := builder.BuildWhereClause(tt.filter)
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

/* ──────────────────────────── List / Count ──────────────────────────── */

func TestPostQueryBuilder_ListAndCountAgree(t *testing.T) {
	builder := postgres.NewPostQueryBuilder()
	filter := repository.PostFilter{Category: "tech", Keyword: "ai"}

	listQuery, listArgs := builder.BuildListQuery(filter, 6, 12)
	countQuery, countArgs := builder.BuildCountQuery(filter)

	if diff := cmp.Diff([]any{"%tech%", "%ai%", 6, 12}, listArgs); diff != "" {
		t.Errorf("list args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"%tech%", "%ai%"}, countArgs); diff != "" {
		t.Errorf("count args mismatch (-want +got):\n%s", diff)
	}

	where, _ := builder.BuildWhereClause(filter)
	if !strings.Contains(listQuery, where) || !strings.Contains(countQuery, where) {
		t.Errorf("queries do not share the WHERE clause:\nlist: %s\ncount: %s", listQuery, countQuery)
	}
	if !strings.HasSuffix(listQuery, "ORDER BY p.date DESC\nLIMIT $3 OFFSET $4") {
		t.Errorf("list query tail = %q", listQuery)
	}
	for _, forbidden := range []string{"ORDER BY", "LIMIT", "OFFSET"} {
		if strings.Contains(countQuery, forbidden) {
			t.Errorf("count query contains %s: %s", forbidden, countQuery)
		}
	}
	if !strings.HasPrefix(countQuery, "SELECT COUNT(*)") {
		t.Errorf("count query = %q", countQuery)
	}
}

func TestPostQueryBuilder_BuildListQuery_NoFilters(t *testing.T) {
	builder := postgres.NewPostQueryBuilder()

	query, args := builder.BuildListQuery(repository.PostFilter{}, 6, 0)

	if diff := cmp.Diff([]any{6, 0}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(query, "WHERE p.status_id = 2\nORDER BY p.date DESC\nLIMIT $1 OFFSET $2") {
		t.Errorf("query = %q", query)
	}
}

func TestPostQueryBuilder_BuildListAllQuery(t *testing.T) {
	builder := postgres.NewPostQueryBuilder()

	query, args := builder.BuildListAllQuery(repository.PostFilter{Visibility: repository.VisibilityAll})

	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
	if strings.Contains(query, "WHERE") || strings.Contains(query, "LIMIT") {
		t.Errorf("admin listing must be unfiltered and unpaginated: %q", query)
	}
	if !strings.HasSuffix(query, "ORDER BY p.date DESC") {
		t.Errorf("query = %q", query)
	}
}
