package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/hankthevc/AGITracker-audit-mirror-sub002/docs"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/service"
)

type Handler struct {
	eventService  service.EventServicer
	reviewService service.ReviewServicer
	indexService  service.IndexServicer
	runService    service.RunServicer
	router        *gin.Engine
	log           *zap.Logger
}

func NewHandler(
	eventService service.EventServicer,
	reviewService service.ReviewServicer,
	indexService service.IndexServicer,
	runService service.RunServicer,
	log *zap.Logger,
) *Handler {
	h := &Handler{
		eventService:  eventService,
		reviewService: reviewService,
		indexService:  indexService,
		runService:    runService,
		router:        gin.Default(),
		log:           log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)

	h.router.POST("/events", h.publishEvent)
	h.router.POST("/events/bulk", h.publishEventsBulk)
	h.router.POST("/events/:id/retract", h.retractEvent)

	h.router.GET("/index", h.getIndex)
	h.router.GET("/index/history", h.getIndexHistory)
	h.router.POST("/index/preview", h.previewIndex)

	h.router.GET("/review", h.getReviewQueue)
	h.router.POST("/review/:id/approve", h.approveLink)
	h.router.POST("/review/:id/reject", h.rejectLink)

	h.router.GET("/presets", h.listPresets)
	h.router.POST("/presets", h.createPreset)

	h.router.POST("/runs/mapping", h.triggerMapping)
	h.router.POST("/runs/aggregation", h.triggerAggregation)
	h.router.GET("/runs", h.listRuns)

	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// idParam parses the numeric :id path parameter, writing a 400 on failure.
func (h *Handler) idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service-layer failures onto HTTP statuses.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// publishEvent handles POST /events
// @Summary Publish a raw event
// @Description Queue a single raw event for tiered, deduplicated ingestion
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.PublishEventRequest true "Raw event"
// @Success 202 {object} dto.PublishEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) publishEvent(c *gin.Context) {
	var req dto.PublishEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventID, err := h.eventService.PublishEvent(&req)
	if err != nil {
		h.log.Error("Failed to queue event",
			zap.Error(err),
			zap.String("url", req.URL))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "rejected",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, dto.PublishEventResponse{
		EventID: eventID,
		Status:  "accepted",
	})
}

// publishEventsBulk handles POST /events/bulk
// @Summary Publish multiple raw events
// @Description Queue multiple raw events; per-event failures are reported without failing the batch
// @Tags events
// @Accept json
// @Produce json
// @Param events body dto.PublishEventsBulkRequest true "Raw events"
// @Success 202 {object} dto.PublishBulkEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /events/bulk [post]
func (h *Handler) publishEventsBulk(c *gin.Context) {
	var bulkRequest dto.PublishEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventIDs, errs, err := h.eventService.PublishBulkEvents(bulkRequest.Events)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.PublishBulkEventsResponse{
		Accepted: len(eventIDs),
		Rejected: len(errs),
		EventIDs: eventIDs,
		Errors:   errs,
	})
}

// retractEvent handles POST /events/:id/retract
// @Summary Retract an event
// @Description Soft-delete an event so it no longer contributes to future index computations. Past snapshots are not revised.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (deduplication hash returned at publish time)"
// @Param retraction body dto.RetractEventRequest true "Retraction details"
// @Success 200 {object} dto.RetractEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id}/retract [post]
func (h *Handler) retractEvent(c *gin.Context) {
	id := c.Param("id")

	var req dto.RetractEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.eventService.RetractEvent(id, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RetractEventResponse{EventID: id, Status: "retracted"})
}

// getIndex handles GET /index
// @Summary Current index
// @Description Latest snapshot for a preset, defaulting to equal weights
// @Tags index
// @Produce json
// @Param preset query string false "Preset name" example:"equal"
// @Success 200 {object} dto.IndexResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /index [get]
func (h *Handler) getIndex(c *gin.Context) {
	var req dto.GetIndexRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.indexService.GetCurrent(req.Preset)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getIndexHistory handles GET /index/history
// @Summary Index history
// @Description Snapshots for a preset between two dates, oldest first
// @Tags index
// @Produce json
// @Param preset query string false "Preset name"
// @Param from query string true "Start date (YYYY-MM-DD)" example:"2026-08-01"
// @Param to query string true "End date (YYYY-MM-DD)" example:"2026-08-26"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /index/history [get]
func (h *Handler) getIndexHistory(c *gin.Context) {
	var req dto.GetHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.indexService.GetHistory(&req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// previewIndex handles POST /index/preview
// @Summary Preview index with custom weights
// @Description Compute the index for ad-hoc weights without persisting a snapshot
// @Tags index
// @Accept json
// @Produce json
// @Param weights body dto.PreviewIndexRequest true "Category weights, summing to 1.0"
// @Success 200 {object} dto.PreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /index/preview [post]
func (h *Handler) previewIndex(c *gin.Context) {
	var req dto.PreviewIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.indexService.Preview(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getReviewQueue handles GET /review
// @Summary Pending review queue
// @Description Links below the auto-approve threshold awaiting a human decision, oldest first
// @Tags review
// @Produce json
// @Param signpost query string false "Filter by signpost code" example:"CAP-01"
// @Param limit query int false "Maximum links to return" example:"50"
// @Success 200 {object} dto.ReviewQueueResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /review [get]
func (h *Handler) getReviewQueue(c *gin.Context) {
	var req dto.GetReviewQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.reviewService.GetQueue(&req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// approveLink handles POST /review/:id/approve
// @Summary Approve a pending link
// @Description Promote a pending event-signpost link into the scored evidence set. Idempotent.
// @Tags review
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param action body dto.ReviewActionRequest false "Reviewer identity"
// @Success 200 {object} dto.ReviewActionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /review/{id}/approve [post]
func (h *Handler) approveLink(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req dto.ReviewActionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.reviewService.Approve(id, req.Actor); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReviewActionResponse{Message: "Link approved", LinkID: id})
}

// rejectLink handles POST /review/:id/reject
// @Summary Reject a pending link
// @Description Delete a pending event-signpost link. The underlying event is kept.
// @Tags review
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param action body dto.ReviewActionRequest false "Reviewer identity"
// @Success 200 {object} dto.ReviewActionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /review/{id}/reject [post]
func (h *Handler) rejectLink(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req dto.ReviewActionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.reviewService.Reject(id, req.Actor); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReviewActionResponse{Message: "Link rejected", LinkID: id})
}

// listPresets handles GET /presets
// @Summary List weight presets
// @Tags presets
// @Produce json
// @Success 200 {object} dto.PresetListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /presets [get]
func (h *Handler) listPresets(c *gin.Context) {
	resp, err := h.indexService.ListPresets()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createPreset handles POST /presets
// @Summary Create a weight preset
// @Description Register a named category weighting. Weights must sum to 1.0.
// @Tags presets
// @Accept json
// @Produce json
// @Param preset body dto.CreatePresetRequest true "Preset definition"
// @Success 201 {object} dto.PresetData
// @Failure 400 {object} dto.ErrorResponse
// @Router /presets [post]
func (h *Handler) createPreset(c *gin.Context) {
	var req dto.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.indexService.CreatePreset(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// triggerMapping handles POST /runs/mapping
// @Summary Trigger a mapping run
// @Description Run the signpost mapper over all mappable events now
// @Tags runs
// @Produce json
// @Success 200 {object} dto.TriggerRunResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs/mapping [post]
func (h *Handler) triggerMapping(c *gin.Context) {
	run, err := h.runService.TriggerMapping()
	if err != nil {
		h.log.Error("Mapping run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "run_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TriggerRunResponse{Message: "Mapping run completed", Run: *run})
}

// triggerAggregation handles POST /runs/aggregation
// @Summary Trigger an aggregation run
// @Description Compute and persist an index snapshot for a preset and date
// @Tags runs
// @Accept json
// @Produce json
// @Param run body dto.TriggerAggregationRequest false "Preset and date, defaulting to equal weights and today (UTC)"
// @Success 200 {object} dto.TriggerRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs/aggregation [post]
func (h *Handler) triggerAggregation(c *gin.Context) {
	var req dto.TriggerAggregationRequest
	_ = c.ShouldBindJSON(&req)

	run, err := h.runService.TriggerAggregation(&req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeServiceError(c, err)
			return
		}
		h.log.Error("Aggregation run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "run_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TriggerRunResponse{Message: "Aggregation run completed", Run: *run})
}

// listRuns handles GET /runs
// @Summary List recent runs
// @Description Recent pipeline runs with their counters, newest first
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum runs to return" example:"50"
// @Success 200 {object} dto.RunListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [get]
func (h *Handler) listRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.runService.ListRuns(limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
