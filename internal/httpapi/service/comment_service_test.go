package service

import (
	"context"
	"testing"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByReviewAndID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, reviewID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func commentServiceUnderTest() (CommentService, *MockCommentRepository, *MockReviewRepository, *MockTitleRepository) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	return NewCommentService(commentRepo, reviewRepo, titleRepo), commentRepo, reviewRepo, titleRepo
}

func TestCreateComment_ParentsFromPathNotPayload(t *testing.T) {
	svc, commentRepo, reviewRepo, titleRepo := commentServiceUnderTest()

	titleRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(7), int64(3)).
		Return(&models.Review{ID: 3, TitleID: 7}, nil)
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ReviewID == 3 && c.AuthorID == "user-1"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 11
	})
	commentRepo.On("GetByReviewAndID", mock.Anything, int64(3), int64(11)).Return(&models.Comment{
		ID:       11,
		ReviewID: 3,
		AuthorID: "user-1",
		Text:     "agreed",
		Author:   models.User{ID: "user-1", Username: strPtr("reader")},
	}, nil)

	actor := permission.Actor{ID: "user-1", Role: permission.RoleUser}
	resp, err := svc.Create(context.Background(), actor, 7, 3, dto.CreateCommentRequest{Text: "agreed"})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, int64(3), resp.ReviewID)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReviewUnderWrongTitle(t *testing.T) {
	svc, commentRepo, reviewRepo, titleRepo := commentServiceUnderTest()

	titleRepo.On("GetByID", mock.Anything, int64(8)).Return(&models.Title{ID: 8}, nil)
	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(8), int64(3)).
		Return(nil, gorm.ErrRecordNotFound)

	actor := permission.Actor{ID: "user-1", Role: permission.RoleUser}
	_, err := svc.Create(context.Background(), actor, 8, 3, dto.CreateCommentRequest{Text: "x"})

	assert.ErrorIs(t, err, ErrReviewNotFound)
	commentRepo.AssertNotCalled(t, "Create")
}

func TestGetComment_MissingTitleShortCircuits(t *testing.T) {
	svc, commentRepo, reviewRepo, titleRepo := commentServiceUnderTest()

	titleRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 404, 3, 11)

	assert.ErrorIs(t, err, ErrTitleNotFound)
	reviewRepo.AssertNotCalled(t, "GetByTitleAndID")
	commentRepo.AssertNotCalled(t, "GetByReviewAndID")
}

func TestUpdateComment_OtherUserForbidden(t *testing.T) {
	svc, commentRepo, reviewRepo, titleRepo := commentServiceUnderTest()

	titleRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(7), int64(3)).
		Return(&models.Review{ID: 3, TitleID: 7}, nil)
	commentRepo.On("GetByReviewAndID", mock.Anything, int64(3), int64(11)).Return(&models.Comment{
		ID:       11,
		ReviewID: 3,
		AuthorID: "user-1",
	}, nil)

	other := permission.Actor{ID: "user-2", Role: permission.RoleUser}
	_, err := svc.Update(context.Background(), other, 7, 3, 11, dto.UpdateCommentRequest{Text: "edit"})

	assert.ErrorIs(t, err, ErrForbidden)
	commentRepo.AssertNotCalled(t, "Update")
}

func TestDeleteComment_ModeratorAllowed(t *testing.T) {
	svc, commentRepo, reviewRepo, titleRepo := commentServiceUnderTest()

	titleRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Title{ID: 7}, nil)
	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(7), int64(3)).
		Return(&models.Review{ID: 3, TitleID: 7}, nil)
	commentRepo.On("GetByReviewAndID", mock.Anything, int64(3), int64(11)).Return(&models.Comment{
		ID:       11,
		ReviewID: 3,
		AuthorID: "user-1",
	}, nil)
	commentRepo.On("Delete", mock.Anything, int64(11)).Return(nil)

	moderator := permission.Actor{ID: "mod-1", Role: permission.RoleModerator}
	err := svc.Delete(context.Background(), moderator, 7, 3, 11)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
