// Package post serves the blog post endpoints.
package post

import (
	"log/slog"
	"net/http"

	"techup-blog/internal/common/pagination"
	"techup-blog/internal/handler/http/auth"
	postUC "techup-blog/internal/usecase/post"
)

// Register wires the post routes. Listing and reading published posts is
// public; everything else requires the admin guard.
func Register(mux *http.ServeMux, svc *postUC.Service, guard *auth.Guard, paginationCfg pagination.Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle("GET /posts", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /posts/{id}", GetHandler{Svc: svc})

	mux.Handle("GET /posts/admin", guard.RequireAdmin(AdminListHandler{svc}))
	mux.Handle("GET /posts/admin/{id}", guard.RequireAdmin(AdminGetHandler{svc}))
	mux.Handle("POST /posts", guard.RequireAdmin(CreateHandler{svc}))
	mux.Handle("PUT /posts/{id}", guard.RequireAdmin(UpdateHandler{svc}))
	mux.Handle("DELETE /posts/{id}", guard.RequireAdmin(DeleteHandler{svc}))
}
