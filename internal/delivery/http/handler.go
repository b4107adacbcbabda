package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rooted/backend/internal/domain"
	"github.com/rooted/backend/internal/usecase"
	"go.uber.org/zap"
)

const (
	serviceName    = "rooted-backend"
	serviceVersion = "1.0.0"
)

// AssistantUsecase answers chat messages
type AssistantUsecase interface {
	Respond(ctx context.Context, request *domain.ChatRequest) (*domain.AssistantReply, error)
	Parse(message string) domain.ParsedRequest
}

// CatalogUsecase serves the farm browse view
type CatalogUsecase interface {
	ListFarms(ctx context.Context, query domain.FarmQuery) ([]*domain.Farm, error)
	GetFarm(ctx context.Context, id string) (*domain.Farm, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assistant AssistantUsecase
	catalog   CatalogUsecase
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. Nil usecases answer 501.
func NewHandler(assistant AssistantUsecase, catalog CatalogUsecase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		assistant: assistant,
		catalog:   catalog,
		logger:    logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}

	if h.catalog != nil {
		if farms, err := h.catalog.ListFarms(c.Request.Context(), domain.FarmQuery{}); err == nil {
			response["farms"] = len(farms)
		}
	}

	c.JSON(http.StatusOK, response)
}

// Chat answers a chat message with farm recommendations
func (h *Handler) Chat(c *gin.Context) {
	if h.assistant == nil {
		notConfigured(c, "assistant")
		return
	}

	var request domain.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.assistant.Respond(c.Request.Context(), &request)
	if err != nil {
		h.logger.Error("assistant failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"text":           usecase.FallbackReply,
			"suggestedFarms": []string{},
			"sequence":       request.Sequence,
		})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// ParseMessage returns the structured form of a chat message
func (h *Handler) ParseMessage(c *gin.Context) {
	if h.assistant == nil {
		notConfigured(c, "assistant")
		return
	}

	var request domain.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.assistant.Parse(request.Message))
}

// ListFarms returns catalog farms filtered and sorted for the shop view
func (h *Handler) ListFarms(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	var query domain.FarmQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	farms, err := h.catalog.ListFarms(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"farms": farms,
		"total": len(farms),
	})
}

// GetFarm returns a single farm by ID
func (h *Handler) GetFarm(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	farm, err := h.catalog.GetFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, farm)
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFarmNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func notConfigured(c *gin.Context, service string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": service + " service not configured",
	})
}
