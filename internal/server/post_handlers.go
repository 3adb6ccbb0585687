package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// respondPostError maps post service failures to their HTTP statuses:
// length violations carry their own status (413 or 422), missing posts are
// 404, foreign posts are 403, anything else is a 500.
func (s *Server) respondPostError(c *fiber.Ctx, err error) error {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return models.RespondWithError(c, fieldErr.Status, fieldErr)
	case errors.Is(err, models.ErrPostNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	case errors.Is(err, models.ErrNotPostOwner):
		return models.RespondWithError(c, fiber.StatusForbidden, err)
	default:
		return s.internalError(c, err)
	}
}

// CreatePost handles POST /blog/create-post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user := s.currentUser(c)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err := s.postService.Create(c.Context(), service.CreatePostInput{
		UserID:  user.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return s.respondPostError(c, err)
	}

	return c.JSON(fiber.Map{"message": "new post created"})
}

// GetPosts handles GET /blog/posts. Every post is returned irrespective of
// owner; the owner field holds the owner's storage id.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.Context())
	if err != nil {
		return s.internalError(c, err)
	}

	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost handles GET /blog/post/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		// An unparseable id cannot match any post.
		return models.RespondWithError(c, fiber.StatusNotFound, models.ErrPostNotFound)
	}

	post, err := s.postService.Get(c.Context(), uint(id))
	if err != nil {
		return s.respondPostError(c, err)
	}

	return c.JSON(post)
}

// EditPost handles POST /blog/edit-post.
func (s *Server) EditPost(c *fiber.Ctx) error {
	user := s.currentUser(c)

	var req struct {
		PostID  uint   `json:"post_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err := s.postService.Update(c.Context(), service.UpdatePostInput{
		RequesterID: user.ID,
		PostID:      req.PostID,
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		return s.respondPostError(c, err)
	}

	return c.JSON(fiber.Map{"message": "post updated"})
}

// DeletePost handles DELETE /blog/delete-post/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	user := s.currentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound, models.ErrPostNotFound)
	}

	if err := s.postService.Delete(c.Context(), uint(id), user.ID); err != nil {
		return s.respondPostError(c, err)
	}

	return c.JSON(fiber.Map{"message": "post deleted"})
}
