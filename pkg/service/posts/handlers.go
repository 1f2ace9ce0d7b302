package posts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulsefeed/post-events/pkg/storage"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func (s *Service) registerRoutes(router *gin.Engine) {
	api := router.Group("/api/posts", requireUser())
	api.POST("", s.handleCreatePost)
	api.GET("", s.handleListPosts)
	api.GET("/:id", s.handleGetPost)
	api.DELETE("/:id", s.handleDeletePost)
}

// requireUser rejects requests that did not pass through the gateway's auth
// layer. The gateway strips any client-supplied x-user-id and sets its own.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("x-user-id") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}
		c.Next()
	}
}

type createPostRequest struct {
	Content  string   `json:"content" binding:"required"`
	MediaIds []string `json:"mediaIds"`
}

func (s *Service) handleCreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Content is required"})
		return
	}

	post, err := s.CreatePost(c.Request.Context(), c.GetHeader("x-user-id"), req.Content, req.MediaIds)
	if err != nil {
		s.logger.Log(c.Request.Context(), "Failed to create post", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

func (s *Service) handleGetPost(c *gin.Context) {
	post, err := s.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		s.logger.Log(c.Request.Context(), "Failed to get post", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (s *Service) handleListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	result, err := s.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		s.logger.Log(c.Request.Context(), "Failed to list posts", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (s *Service) handleDeletePost(c *gin.Context) {
	err := s.DeletePost(c.Request.Context(), c.Param("id"), c.GetHeader("x-user-id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		s.logger.Log(c.Request.Context(), "Failed to delete post", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully"})
}
