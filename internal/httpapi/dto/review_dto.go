package dto

import (
	"net/http"
	"time"

	"reviewhub/internal/httpapi/models"
)

// ReviewContract selects the validation rules for review endpoints. Only
// creation enforces the one-review-per-author-per-title rule; an existing
// review can be edited without tripping the check against itself.
type ReviewContract int

const (
	ReviewContractCreate ReviewContract = iota
	ReviewContractUpdate
)

// ReviewContractFor picks the review contract for an HTTP method.
func ReviewContractFor(method string) ReviewContract {
	if method == http.MethodPost {
		return ReviewContractCreate
	}
	return ReviewContractUpdate
}

// EnforcesUniqueness reports whether the contract requires the
// one-review-per-author-per-title check.
func (c ReviewContract) EnforcesUniqueness() bool {
	return c == ReviewContractCreate
}

// CreateReviewRequest for creating a review
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewRequest for partial review updates; nil fields are left untouched
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID      int64     `json:"id"`
	TitleID int64     `json:"title_id"`
	Author  *string   `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      review.ID,
		TitleID: review.TitleID,
		Author:  review.Author.Username,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.CreatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
