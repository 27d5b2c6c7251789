package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appqc "github.com/shantum/COH-ERP2-sub001/internal/application/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/dto"
)

// QCUseCases is the inspection queue as seen by the HTTP layer
type QCUseCases interface {
	Decide(ctx context.Context, itemID uuid.UUID, req appqc.DecideRequest) (*appqc.DecisionResponse, error)
	Undo(ctx context.Context, itemID uuid.UUID, actor string) (*appqc.UndoResponse, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*appqc.ItemResponse, error)
	ListPending(ctx context.Context, page shared.Page) ([]appqc.ItemResponse, int64, error)
}

// QCHandler serves the QC queue endpoints
type QCHandler struct {
	BaseHandler
	items QCUseCases
}

var _ QCUseCases = (*appqc.Service)(nil)

// NewQCHandler creates a new QCHandler
func NewQCHandler(items QCUseCases) *QCHandler {
	return &QCHandler{items: items}
}

// RegisterRoutes mounts the QC queue endpoints under rg
func (h *QCHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/qc/items")
	items.GET("", h.ListPending)
	items.GET("/:id", h.GetItem)
	items.POST("/:id/decide", h.Decide)
	items.POST("/:id/undo", h.Undo)
}

// ListPending handles GET /qc/items
func (h *QCHandler) ListPending(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	page := req.Page()

	items, total, err := h.items.ListPending(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, page)
}

// GetItem handles GET /qc/items/:id
func (h *QCHandler) GetItem(c *gin.Context) {
	itemID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.items.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Decide handles POST /qc/items/:id/decide
func (h *QCHandler) Decide(c *gin.Context) {
	itemID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appqc.DecideRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.items.Decide(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	message := "Item approved and restocked"
	if resp.Action == string(qc.ActionWriteOff) {
		message = "Item written off"
	}
	h.SuccessWithMessage(c, resp, message)
}

// Undo handles POST /qc/items/:id/undo
func (h *QCHandler) Undo(c *gin.Context) {
	itemID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.items.Undo(c.Request.Context(), itemID, h.actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Decision reversed, item back in queue")
}
