package post

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"techup-blog/internal/common/pagination"
	"techup-blog/internal/handler/http/respond"
	"techup-blog/internal/observability/logging"
	postUC "techup-blog/internal/usecase/post"
)

type ListHandler struct {
	Svc           *postUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists published posts.
// @Summary      List published posts
// @Description  Returns one page of published posts, newest first. category and keyword are case-insensitive substring filters; keyword matches title, description or content.
// @Tags         posts
// @Produce      json
// @Param        category query    string false "Category name filter"
// @Param        keyword  query    string false "Free-text filter"
// @Param        page     query    int    false "Page number (1-based)" default(1) minimum(1)
// @Param        limit    query    int    false "Posts per page" default(6) minimum(1) maximum(100)
// @Success      200 {object} ListResponse
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	q := r.URL.Query()
	params := pagination.FromRequest(r, h.PaginationCfg)
	result, err := h.Svc.ListPublished(ctx, postUC.ListInput{
		Category: strings.TrimSpace(q.Get("category")),
		Keyword:  strings.TrimSpace(q.Get("keyword")),
		Params:   params,
	})
	if err != nil {
		kind := "database"
		if errors.Is(err, context.DeadlineExceeded) {
			kind = "timeout"
		}
		logger.Error("post listing failed",
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit),
			slog.String("error_type", kind),
			slog.String("error", respond.SanitizeError(err)))
		pagination.RecordRequest(http.StatusInternalServerError, params.Page)
		respond.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	resp := newListResponse(result.Posts, result.Pagination)
	elapsed := time.Since(start)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", elapsed)
	pagination.LogPage(ctx, logger, params, len(resp.Posts), elapsed)

	respond.JSON(w, http.StatusOK, resp)
}

type AdminListHandler struct{ Svc *postUC.Service }

// ServeHTTP lists every post.
// @Summary      List all posts
// @Description  Returns every post regardless of status, newest first. No pagination.
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} AdminListResponse
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      404 {object} map[string]string "User role not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts/admin [get]
func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Svc.ListAll(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, AdminListResponse{Posts: toDTOs(posts)})
}
