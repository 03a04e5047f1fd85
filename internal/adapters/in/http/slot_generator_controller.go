package http

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/domain"
	"bookable-slots-generator/internal/core/ports/in"
)

type SlotGeneratorController struct {
	useCase in.SlotGeneratorUseCase
	cfg     *config.Config
}

func NewSlotGeneratorController(useCase in.SlotGeneratorUseCase, cfg *config.Config) *SlotGeneratorController {
	return &SlotGeneratorController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *SlotGeneratorController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/slots/generate/:resourceId", c.generateSlots)
		api.POST("/slots/generate-batch", c.generateBatchSlots)
		api.POST("/slots/preview", c.previewSlots)
	}
}

type GenerateSlotsRequest struct {
	// Момент "сейчас" можно зафиксировать в запросе, по умолчанию текущее время
	Now string `json:"now"`
}

type GenerateBatchSlotsRequest struct {
	ResourceIDs []uuid.UUID `json:"resourceIds" binding:"required,min=1"`
	Now         string      `json:"now"`
}

type PreviewSlotsRequest struct {
	Now              string                  `json:"now"`
	AvailabilityData domain.AvailabilityData `json:"availabilityData" binding:"required"`
}

func (c *SlotGeneratorController) generateSlots(ctx *gin.Context) {
	resourceID, err := uuid.Parse(ctx.Param("resourceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID format"})
		return
	}

	var req GenerateSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now, ok := c.parseNow(ctx, req.Now)
	if !ok {
		return
	}

	slots, err := c.useCase.GenerateSlots(ctx.Request.Context(), resourceID, now)
	if err != nil {
		respondUseCaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"resourceId": resourceID,
		"slots":      slots,
	})
}

func (c *SlotGeneratorController) generateBatchSlots(ctx *gin.Context) {
	var req GenerateBatchSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now, ok := c.parseNow(ctx, req.Now)
	if !ok {
		return
	}

	result, err := c.useCase.GenerateBatchSlots(ctx.Request.Context(), req.ResourceIDs, now)
	if err != nil {
		respondUseCaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": result})
}

func (c *SlotGeneratorController) previewSlots(ctx *gin.Context) {
	var req PreviewSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now, ok := c.parseNow(ctx, req.Now)
	if !ok {
		return
	}

	slots, err := c.useCase.PreviewSlots(ctx.Request.Context(), now, req.AvailabilityData)
	if err != nil {
		respondUseCaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (c *SlotGeneratorController) parseNow(ctx *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}

	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid now format"})
		return time.Time{}, false
	}

	return now, true
}

func respondUseCaseError(ctx *gin.Context, err error) {
	// Невалидный день недели - ошибка данных, а не сервиса
	var weekdayErr *domain.InvalidWeekdayError
	if errors.As(err, &weekdayErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": weekdayErr.Error()})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (c *SlotGeneratorController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
