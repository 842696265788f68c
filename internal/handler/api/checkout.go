package api

import (
	"net/http"

	"fleet-console/internal/domain/subscription"
	reqdto "fleet-console/internal/handler/dto/request"
	resdto "fleet-console/internal/handler/dto/response"
	"fleet-console/internal/handler/httperr"
	"fleet-console/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Init prices the draft. A response overtaken by a newer init is answered
// with 409 and must be ignored by the client.
func (h *ComposerHandler) Init(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	bd, err := s.Init(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "Pricing failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBreakdown(bd))
}

// Confirm places the order. On success the composer session is closed.
func (h *ComposerHandler) Confirm(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	receipt, err := s.Confirm(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "Order could not be placed")
		return
	}
	c.JSON(http.StatusCreated, resdto.ReceiptResponse{
		OrderID:   receipt.OrderID,
		Breakdown: resdto.FromBreakdown(receipt.Breakdown),
	})
}

func (h *ComposerHandler) EstimateSubscription(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.SubscriptionEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	est, err := s.Checkout().Estimate(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err, "Estimate failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromEstimate(est))
}

// InitPayment opens a payment session for a plan, or for the last estimate
// when no plan id is given.
func (h *ComposerHandler) InitPayment(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.PaymentInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	startsAt, err := s.Slots().ParseDate(req.StartsAt)
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid start date")
		return
	}

	var estimate *subscription.Estimate
	if est, ok := s.Checkout().LastEstimate(); ok {
		estimate = &est
	}
	plan, err := subscription.NewPlanRef(req.PlanID, estimate)
	if err != nil {
		abortWithUsecaseError(c, errs.Mark(err, errs.ErrValidation), "Nothing to pay for")
		return
	}
	if plan.HasPlan() {
		plan.Estimate = nil
	}

	snap, err := s.Checkout().InitPayment(c.Request.Context(), plan, req.Cycle(), startsAt)
	if err != nil {
		abortWithUsecaseError(c, err, "Payment could not be started")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPayment(snap))
}

// VerifyPayment checks the payment for the reference in the path. It must be
// the reference of the session opened last.
func (h *ComposerHandler) VerifyPayment(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	startDate, err := s.Slots().ParseDate(req.StartDate)
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid start date")
		return
	}

	snap, err := s.Checkout().Verify(c.Request.Context(), c.Param("reference"), req.PlanID, startDate)
	if err != nil {
		abortWithUsecaseError(c, err, "Payment could not be verified")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPayment(snap))
}
