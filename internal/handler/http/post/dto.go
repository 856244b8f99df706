package post

import (
	"time"

	"techup-blog/internal/common/pagination"
	"techup-blog/internal/domain/entity"
)

// Response messages.
const (
	MsgCreated         = "Created post successfully"
	MsgUpdated         = "Updated post successfully"
	MsgDeleted         = "Deleted post successfully"
	MsgNotFound        = "Post not found"
	MsgInvalidID       = "Invalid post ID"
	MsgInvalidRef      = "Category or status does not exist"
	msgInvalidBody     = "invalid request body"
	multipartMaxMemory = 8 << 20
)

// DTO is a post joined with its category name and status label.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	Title       string    `json:"title" example:"Getting started with Go"`
	Image       string    `json:"image" example:"https://xyz.supabase.co/storage/v1/object/public/my-personal-blog/posts/1700000000000-a1b2"`
	CategoryID  int64     `json:"category_id" example:"2"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	StatusID    int64     `json:"status_id" example:"2"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category" example:"Tech"`
	Status      string    `json:"status" example:"published"`
}

// ListResponse is one page of the public listing.
type ListResponse struct {
	TotalPosts   int64 `json:"totalPosts" example:"13"`
	TotalPages   int   `json:"totalPages" example:"3"`
	CurrentPage  int   `json:"currentPage" example:"1"`
	Limit        int   `json:"limit" example:"6"`
	Posts        []DTO `json:"posts"`
	NextPage     *int  `json:"nextPage,omitempty" example:"2"`
	PreviousPage *int  `json:"previousPage,omitempty"`
}

// AdminListResponse carries every post of every status.
type AdminListResponse struct {
	Posts []DTO `json:"posts"`
}

func toDTO(p entity.PostView) DTO {
	return DTO{
		ID:          p.ID,
		Title:       p.Title,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Content:     p.Content,
		StatusID:    int64(p.StatusID),
		Date:        p.Date,
		Category:    p.Category,
		Status:      p.Status,
	}
}

func toDTOs(posts []entity.PostView) []DTO {
	out := make([]DTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toDTO(p))
	}
	return out
}

func newListResponse(posts []entity.PostView, meta pagination.Metadata) ListResponse {
	return ListResponse{
		TotalPosts:   meta.Total,
		TotalPages:   meta.TotalPages,
		CurrentPage:  meta.CurrentPage,
		Limit:        meta.Limit,
		Posts:        toDTOs(posts),
		NextPage:     meta.NextPage,
		PreviousPage: meta.PreviousPage,
	}
}
