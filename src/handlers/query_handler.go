package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

type QueryHandler struct {
	processor models.QueryProcessor
	stats     models.CacheStatsReporter
}

func NewQueryHandler(processor models.QueryProcessor, stats models.CacheStatsReporter) *QueryHandler {
	return &QueryHandler{
		processor: processor,
		stats:     stats,
	}
}

// HandleQuery answers a weather question. Pipeline failures are part of the
// answer text, so the status is 200 whenever the request itself is valid.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := uuid.NewString()
	startTime := time.Now()

	result := h.processor.Run(c.Request.Context(), req.Text)
	if result == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query processing failed", "request_id": requestID})
		return
	}
	if result.Failed {
		log.Printf("Request %s answered with the generic error", requestID)
	}

	c.JSON(http.StatusOK, &models.QueryResponse{
		RequestID: requestID,
		Response:  result.Response,
		Sentences: result.Sentences,
		Outcomes:  result.Outcomes,
		Latency:   time.Since(startTime),
		Timestamp: time.Now(),
	})
}

func (h *QueryHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Stats(c.Request.Context()))
}

func (h *QueryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}
