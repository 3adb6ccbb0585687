package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService implements post CRUD with owner-scoped access control.
type PostService struct {
	posts repository.PostRepository
	cache *cache.Cache
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

// UpdatePostInput is the payload for editing a post. Only title and content
// are mutable; ownership never changes.
type UpdatePostInput struct {
	RequesterID uint
	PostID      uint
	Title       string
	Content     string
}

// NewPostService creates a PostService. The cache may be backed by a nil
// client, in which case all reads go straight to the repository.
func NewPostService(posts repository.PostRepository, c *cache.Cache) *PostService {
	return &PostService{posts: posts, cache: c}
}

// Create validates the length bounds and persists a new post owned by the
// requester.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePost(in.Title, in.Content); err != nil {
		observability.PostOperations.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		observability.PostOperations.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.PostsListKey)
	observability.PostOperations.WithLabelValues("create", "ok").Inc()
	return post, nil
}

// List returns every post irrespective of owner.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.posts.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// Get returns a single post by id, or models.ErrPostNotFound.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		found, fetchErr := s.posts.GetByID(ctx, id)
		if fetchErr != nil {
			return fetchErr
		}
		if found == nil {
			return models.ErrPostNotFound
		}
		post = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update re-validates the length bounds, then checks existence, then
// ownership, in that order, before mutating title and content in place.
// Nothing is written when any check fails.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validation.ValidatePost(in.Title, in.Content); err != nil {
		observability.PostOperations.WithLabelValues("update", "rejected").Inc()
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		observability.PostOperations.WithLabelValues("update", "error").Inc()
		return nil, err
	}
	if post == nil {
		observability.PostOperations.WithLabelValues("update", "not_found").Inc()
		return nil, models.ErrPostNotFound
	}
	if !post.OwnedBy(in.RequesterID) {
		observability.PostOperations.WithLabelValues("update", "forbidden").Inc()
		return nil, models.ErrNotPostOwner
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.posts.Update(ctx, post); err != nil {
		observability.PostOperations.WithLabelValues("update", "error").Inc()
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.PostsListKey, cache.PostKey(post.ID))
	observability.PostOperations.WithLabelValues("update", "ok").Inc()
	return post, nil
}

// Delete removes a post after the same existence and ownership checks as
// Update. A repeated delete of the same id reports not-found.
func (s *PostService) Delete(ctx context.Context, postID, requesterID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		observability.PostOperations.WithLabelValues("delete", "error").Inc()
		return err
	}
	if post == nil {
		observability.PostOperations.WithLabelValues("delete", "not_found").Inc()
		return models.ErrPostNotFound
	}
	if !post.OwnedBy(requesterID) {
		observability.PostOperations.WithLabelValues("delete", "forbidden").Inc()
		return models.ErrNotPostOwner
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		observability.PostOperations.WithLabelValues("delete", "error").Inc()
		return err
	}

	s.cache.Invalidate(ctx, cache.PostsListKey, cache.PostKey(postID))
	observability.PostOperations.WithLabelValues("delete", "ok").Inc()
	return nil
}
