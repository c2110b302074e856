package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ShelfHandler struct {
	svc service.ShelfService
}

func NewShelfHandler(svc service.ShelfService) *ShelfHandler {
	return &ShelfHandler{svc: svc}
}

func (h *ShelfHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:book_id", h.Get)
	rg.POST("/:book_id", h.SetShelf)
	rg.PUT("/:book_id/progress", h.UpdateProgress)
	rg.DELETE("/:book_id", h.Remove)
}

// List the caller's shelf, optionally filtered with ?shelf=read etc.
func (h *ShelfHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	shelf := c.Query("shelf")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.svc.List(ctx, userID, shelf)
	if err != nil {
		if errors.Is(err, service.ErrInvalidShelf) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shelf"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.ShelfEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromModelToShelfEntryResponse(entry))
	}

	c.JSON(http.StatusOK, dto.ShelfListResponse{
		Items: items,
		Total: len(items),
	})
}

func (h *ShelfHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, service.ErrShelfEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book is not on your shelf"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToShelfEntryResponse(*entry))
}

func (h *ShelfHandler) SetShelf(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	var req dto.SetShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.SetShelf(ctx, userID, bookID, req.Shelf)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		case errors.Is(err, service.ErrInvalidShelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shelf"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToShelfEntryResponse(*entry))
}

func (h *ShelfHandler) UpdateProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.UpdateProgress(ctx, userID, bookID, req.PagesRead, req.Percentage)
	if err != nil {
		if errors.Is(err, service.ErrShelfEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book is not on your shelf"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToShelfEntryResponse(*entry))
}

func (h *ShelfHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID, bookID); err != nil {
		if errors.Is(err, service.ErrShelfEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book is not on your shelf"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// currentUserID pulls the authenticated user id set by AuthMiddleware. Writes
// the error response itself when missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID.(string), true
}

func bookIDParam(c *gin.Context) (int64, bool) {
	bookID, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil || bookID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book_id"})
		return 0, false
	}
	return bookID, true
}
