package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the repository.PostRepository interface.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newPostService(repo *MockPostRepository) *PostService {
	// nil Redis client, so every read goes straight to the repository
	return NewPostService(repo, cache.New(nil))
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		post, err := newPostService(repo).Create(ctx, CreatePostInput{
			UserID:  3,
			Title:   "First post",
			Content: "Hello world",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), post.UserID)
		assert.Equal(t, "First post", post.Title)
		repo.AssertExpectations(t)
	})

	t.Run("Validation failure skips repository", func(t *testing.T) {
		repo := new(MockPostRepository)

		_, err := newPostService(repo).Create(ctx, CreatePostInput{
			UserID:  3,
			Title:   "",
			Content: "Hello world",
		})
		assert.ErrorIs(t, err, validation.ErrTitleTooShort)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Repository error surfaces", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := newPostService(repo).Create(ctx, CreatePostInput{
			UserID:  3,
			Title:   "t",
			Content: "c",
		})
		assert.Error(t, err)
	})
}

func TestPostService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns repository rows", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("List", mock.Anything).Return([]models.Post{
			{ID: 1, Title: "a", Content: "x", UserID: 1},
			{ID: 2, Title: "b", Content: "y", UserID: 2},
		}, nil)

		posts, err := newPostService(repo).List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, uint(1), posts[0].ID)
	})

	t.Run("Empty table yields empty slice", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("List", mock.Anything).Return([]models.Post{}, nil)

		posts, err := newPostService(repo).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})
}

func TestPostService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, Title: "t", Content: "c", UserID: 2}, nil)

		post, err := newPostService(repo).Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, uint(5), post.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

		_, err := newPostService(repo).Get(ctx, 99)
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()
	existing := &models.Post{ID: 10, Title: "old", Content: "old content", UserID: 1}

	t.Run("Owner can edit", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(10)).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		post, err := newPostService(repo).Update(ctx, UpdatePostInput{
			RequesterID: 1,
			PostID:      10,
			Title:       "new title",
			Content:     "new content",
		})
		require.NoError(t, err)
		assert.Equal(t, "new title", post.Title)
		assert.Equal(t, "new content", post.Content)
		assert.Equal(t, uint(1), post.UserID)
	})

	t.Run("Validation runs before existence check", func(t *testing.T) {
		repo := new(MockPostRepository)

		_, err := newPostService(repo).Update(ctx, UpdatePostInput{
			RequesterID: 1,
			PostID:      99999,
			Title:       strings.Repeat("a", 201),
			Content:     "fine",
		})
		assert.ErrorIs(t, err, validation.ErrTitleTooLong)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Missing post", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

		_, err := newPostService(repo).Update(ctx, UpdatePostInput{
			RequesterID: 1, PostID: 99, Title: "t", Content: "c",
		})
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})

	t.Run("Non-owner rejected before any write", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(10)).Return(existing, nil)

		_, err := newPostService(repo).Update(ctx, UpdatePostInput{
			RequesterID: 2, PostID: 10, Title: "t", Content: "c",
		})
		assert.ErrorIs(t, err, models.ErrNotPostOwner)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	existing := &models.Post{ID: 10, Title: "t", Content: "c", UserID: 1}

	t.Run("Owner can delete", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(10)).Return(existing, nil)
		repo.On("Delete", mock.Anything, uint(10)).Return(nil)

		err := newPostService(repo).Delete(ctx, 10, 1)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing post", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(10)).Return(nil, nil)

		err := newPostService(repo).Delete(ctx, 10, 1)
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})

	t.Run("Non-owner rejected", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("GetByID", mock.Anything, uint(10)).Return(existing, nil)

		err := newPostService(repo).Delete(ctx, 10, 2)
		assert.ErrorIs(t, err, models.ErrNotPostOwner)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
