package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/permission"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes nested under a title and review.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	comments.Use(middleware.Permit(permission.OwnerOrModerator))
	{
		comments.GET("", h.List)
		comments.POST("", h.Create)
		comments.GET("/:comment_id", h.Get)
		comments.PATCH("/:comment_id", h.Update)
		comments.DELETE("/:comment_id", h.Delete)
	}
}

func commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return 0, false
	}
	return id, true
}

func commentPath(c *gin.Context) (tID, rID int64, ok bool) {
	tID, ok = titleID(c)
	if !ok {
		return 0, 0, false
	}
	rID, ok = reviewID(c)
	if !ok {
		return 0, 0, false
	}
	return tID, rID, true
}

// List retrieves all comments for a review, newest first
// GET /api/v1/titles/:title_id/reviews/:review_id/comments?page=1&page_size=20
func (h *CommentHandler) List(c *gin.Context) {
	tID, rID, ok := commentPath(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)

	comments, err := h.commentService.ListByReview(c.Request.Context(), tID, rID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Get retrieves a comment scoped to its review and title
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	tID, rID, ok := commentPath(c)
	if !ok {
		return
	}
	cID, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), tID, rID, cID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Create creates a comment authored by the acting user
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	tID, rID, ok := commentPath(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.ActorFrom(c)
	comment, err := h.commentService.Create(c.Request.Context(), actor, tID, rID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update rewrites a comment's text (author, moderator or admin)
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	tID, rID, ok := commentPath(c)
	if !ok {
		return
	}
	cID, ok := commentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.ActorFrom(c)
	comment, err := h.commentService.Update(c.Request.Context(), actor, tID, rID, cID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment (author, moderator or admin)
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	tID, rID, ok := commentPath(c)
	if !ok {
		return
	}
	cID, ok := commentID(c)
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	if err := h.commentService.Delete(c.Request.Context(), actor, tID, rID, cID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
