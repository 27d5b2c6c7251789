package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/dto"
)

// ReturnUseCases is the return lifecycle as seen by the HTTP layer
type ReturnUseCases interface {
	Initiate(ctx context.Context, lineID uuid.UUID, req apptrade.InitiateReturnRequest) (*apptrade.InitiateReturnResponse, error)
	SchedulePickup(ctx context.Context, lineID uuid.UUID, req apptrade.SchedulePickupRequest) (*apptrade.PickupResponse, error)
	MarkInTransit(ctx context.Context, lineID uuid.UUID, req apptrade.MarkInTransitRequest) (*apptrade.TransitionResponse, error)
	Receive(ctx context.Context, lineID uuid.UUID, req apptrade.ReceiveRequest) (*apptrade.ReceiveResponse, error)
	Complete(ctx context.Context, lineID uuid.UUID, actor string) (*apptrade.TransitionResponse, error)
	Cancel(ctx context.Context, lineID uuid.UUID, req apptrade.CancelReturnRequest) (*apptrade.TransitionResponse, error)
	UpdateNotes(ctx context.Context, lineID uuid.UUID, req apptrade.UpdateNotesRequest) (*apptrade.ReturnLineResponse, error)
	ProcessRefund(ctx context.Context, lineID uuid.UUID, req apptrade.ProcessRefundRequest) (*apptrade.RefundResponse, error)
	CompleteRefund(ctx context.Context, lineID uuid.UUID, req apptrade.CompleteRefundRequest) (*apptrade.RefundCompletionResponse, error)
	GetLine(ctx context.Context, lineID uuid.UUID) (*apptrade.ReturnLineResponse, error)
}

// ExchangeUseCases creates replacement orders
type ExchangeUseCases interface {
	CreateExchangeOrder(ctx context.Context, lineID uuid.UUID, req apptrade.CreateExchangeOrderRequest) (*apptrade.ExchangeOrderResponse, error)
}

// ReturnHandler serves the return-line endpoints
type ReturnHandler struct {
	BaseHandler
	returns   ReturnUseCases
	exchanges ExchangeUseCases
}

var (
	_ ReturnUseCases   = (*apptrade.ReturnService)(nil)
	_ ExchangeUseCases = (*apptrade.ExchangeService)(nil)
)

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returns ReturnUseCases, exchanges ExchangeUseCases) *ReturnHandler {
	return &ReturnHandler{returns: returns, exchanges: exchanges}
}

// RegisterRoutes mounts the return-line endpoints under rg
func (h *ReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lines := rg.Group("/returns/lines/:id")
	lines.GET("", h.GetLine)
	lines.POST("/initiate", h.Initiate)
	lines.POST("/schedule-pickup", h.SchedulePickup)
	lines.POST("/in-transit", h.MarkInTransit)
	lines.POST("/receive", h.Receive)
	lines.POST("/refund", h.ProcessRefund)
	lines.POST("/refund/complete", h.CompleteRefund)
	lines.POST("/exchange-order", h.CreateExchangeOrder)
	lines.POST("/complete", h.Complete)
	lines.POST("/cancel", h.Cancel)
	lines.PUT("/notes", h.UpdateNotes)
}

// Initiate handles POST /returns/lines/:id/initiate
func (h *ReturnHandler) Initiate(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.InitiateReturnRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.returns.Initiate(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp, "Return initiated")
}

// SchedulePickup handles POST /returns/lines/:id/schedule-pickup
func (h *ReturnHandler) SchedulePickup(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.SchedulePickupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.returns.SchedulePickup(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Pickup scheduled")
}

// MarkInTransit handles POST /returns/lines/:id/in-transit
func (h *ReturnHandler) MarkInTransit(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.MarkInTransitRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.returns.MarkInTransit(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Return in transit")
}

// Receive handles POST /returns/lines/:id/receive
func (h *ReturnHandler) Receive(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.ReceiveRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.returns.Receive(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Return received")
}

// ProcessRefund handles POST /returns/lines/:id/refund. A refund that nets
// to zero or less is rejected here before the line is touched.
func (h *ReturnHandler) ProcessRefund(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.ProcessRefundRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	net := trade.CalculateNetRefund(req.Gross, req.DiscountClawback, req.Deductions)
	if !net.IsPositive() {
		h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeInvalidRefundAmount,
			"Net refund must be greater than zero, got "+net.StringFixed(2))
		return
	}

	resp, err := h.returns.ProcessRefund(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Refund processed")
}

// CompleteRefund handles POST /returns/lines/:id/refund/complete
func (h *ReturnHandler) CompleteRefund(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.CompleteRefundRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.returns.CompleteRefund(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Refund completed")
}

// CreateExchangeOrder handles POST /returns/lines/:id/exchange-order
func (h *ReturnHandler) CreateExchangeOrder(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.CreateExchangeOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.exchanges.CreateExchangeOrder(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp, "Exchange order "+resp.OrderNumber+" created")
}

// Complete handles POST /returns/lines/:id/complete
func (h *ReturnHandler) Complete(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.returns.Complete(c.Request.Context(), lineID, h.actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Return completed")
}

// Cancel handles POST /returns/lines/:id/cancel
func (h *ReturnHandler) Cancel(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.CancelReturnRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	req.Actor = h.actor(c)

	resp, err := h.returns.Cancel(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, resp, "Return cancelled")
}

// UpdateNotes handles PUT /returns/lines/:id/notes
func (h *ReturnHandler) UpdateNotes(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req apptrade.UpdateNotesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.returns.UpdateNotes(c.Request.Context(), lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetLine handles GET /returns/lines/:id
func (h *ReturnHandler) GetLine(c *gin.Context) {
	lineID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.returns.GetLine(c.Request.Context(), lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
