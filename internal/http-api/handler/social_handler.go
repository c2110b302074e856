package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	followSvc service.FollowService
	feedSvc   service.FeedService
}

func NewSocialHandler(followSvc service.FollowService, feedSvc service.FeedService) *SocialHandler {
	return &SocialHandler{followSvc: followSvc, feedSvc: feedSvc}
}

func (h *SocialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/follow/:id", h.ToggleFollow)
	rg.GET("/following", h.Following)
	rg.GET("/followers", h.Followers)
	rg.GET("/feed", h.Feed)
}

// ToggleFollow follows the target user, or unfollows on a second call.
func (h *SocialHandler) ToggleFollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	following, err := h.followSvc.Toggle(ctx, userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusConflict, gin.H{"error": "cannot follow yourself"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FollowToggleResponse{Following: following})
}

func (h *SocialHandler) Following(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.followSvc.ListFollowing(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": len(users)})
}

func (h *SocialHandler) Followers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.followSvc.ListFollowers(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": len(users)})
}

// Feed returns recent activity of followed users, newest first.
func (h *SocialHandler) Feed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	events, err := h.feedSvc.BuildFeed(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FeedResponse{
		Events: events,
		Total:  len(events),
	})
}
