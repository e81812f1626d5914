package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/permission"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, actor permission.Actor, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID int64) error {
	args := m.Called(ctx, actor, titleID, reviewID)
	return args.Error(0)
}

// actAs injects an actor the way the auth middleware would.
func actAs(actor permission.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor", actor)
		c.Next()
	}
}

func reviewRouter(h *ReviewHandler, actor permission.Actor) *gin.Engine {
	router := setupRouter()
	group := router.Group("")
	group.Use(actAs(actor))
	h.RegisterRoutes(group)
	return router
}

func TestListReviews_Anonymous(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := reviewRouter(handler, permission.Actor{Anonymous: true})

	author := "critic"
	mockReviewService.On("ListByTitle", mock.Anything, int64(7), 1, 20).
		Return(dto.NewPaginatedReviewResponse([]dto.ReviewResponse{
			{ID: 3, TitleID: 7, Author: &author, Text: "great", Score: 9, PubDate: time.Now()},
		}, 1, 1, 20), nil)

	req, _ := http.NewRequest("GET", "/titles/7/reviews", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "critic")
	mockReviewService.AssertExpectations(t)
}

func TestCreateReview_AnonymousForbidden(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := reviewRouter(handler, permission.Actor{Anonymous: true})

	body, _ := json.Marshal(dto.CreateReviewRequest{Text: "great", Score: 9})

	req, _ := http.NewRequest("POST", "/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockReviewService.AssertNotCalled(t, "Create")
}

func TestCreateReview_Success(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)

	actor := permission.Actor{ID: "user-1", Role: permission.RoleUser}
	router := reviewRouter(handler, actor)

	reqBody := dto.CreateReviewRequest{Text: "great", Score: 9}
	author := "reader"
	mockReviewService.On("Create", mock.Anything, actor, int64(7), reqBody).
		Return(&dto.ReviewResponse{ID: 1, TitleID: 7, Author: &author, Text: "great", Score: 9}, nil)

	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestCreateReview_Duplicate(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)

	actor := permission.Actor{ID: "user-1", Role: permission.RoleUser}
	router := reviewRouter(handler, actor)

	reqBody := dto.CreateReviewRequest{Text: "again", Score: 5}
	mockReviewService.On("Create", mock.Anything, actor, int64(7), reqBody).
		Return(nil, service.ErrReviewExists)

	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)

	actor := permission.Actor{ID: "user-1", Role: permission.RoleUser}
	router := reviewRouter(handler, actor)

	body, _ := json.Marshal(map[string]any{"text": "great", "score": 11})

	req, _ := http.NewRequest("POST", "/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "Create")
}

func TestGetReview_CrossTitleNotFound(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := reviewRouter(handler, permission.Actor{Anonymous: true})

	// review 3 exists but belongs to a different title
	mockReviewService.On("Get", mock.Anything, int64(8), int64(3)).
		Return(nil, service.ErrReviewNotFound)

	req, _ := http.NewRequest("GET", "/titles/8/reviews/3", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestUpdateReview_NotAuthorForbidden(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)

	actor := permission.Actor{ID: "user-2", Role: permission.RoleUser}
	router := reviewRouter(handler, actor)

	text := "mine now"
	reqBody := dto.UpdateReviewRequest{Text: &text}
	mockReviewService.On("Update", mock.Anything, actor, int64(7), int64(3), reqBody).
		Return(nil, service.ErrForbidden)

	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("PATCH", "/titles/7/reviews/3", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestDeleteReview_Moderator(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)

	actor := permission.Actor{ID: "mod-1", Role: permission.RoleModerator}
	router := reviewRouter(handler, actor)

	mockReviewService.On("Delete", mock.Anything, actor, int64(7), int64(3)).Return(nil)

	req, _ := http.NewRequest("DELETE", "/titles/7/reviews/3", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockReviewService.AssertExpectations(t)
}
