package api

import (
	"net/http"

	"fleet-console/internal/domain/request"
	reqdto "fleet-console/internal/handler/dto/request"
	resdto "fleet-console/internal/handler/dto/response"
	"fleet-console/internal/handler/httperr"
	"fleet-console/internal/pkg/patch"

	"github.com/gin-gonic/gin"
)

// SelectFuelType answers with the unit price when the backend supplied one.
func (h *ComposerHandler) SelectFuelType(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.FuelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ft := request.FuelType(req.FuelType)
	if err := s.Quantity().SelectFuelType(c.Request.Context(), ft); err != nil {
		abortWithUsecaseError(c, err, "Could not select fuel type")
		return
	}
	resp := resdto.UnitPriceResponse{FuelType: ft.String()}
	if price, ok := s.Quantity().UnitPrice(ft); ok {
		resp.UnitPrice = patch.Ref(price)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComposerHandler) SetLitres(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.LitresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	amount, priced, err := s.Quantity().SetLitres(*req.Litres)
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid quantity")
		return
	}
	resp := resdto.LitresResponse{Quantity: *req.Litres}
	if priced {
		resp.EstimatedAmount = patch.Ref(amount)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComposerHandler) SetAmount(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	conv, err := s.Quantity().SetAmount(c.Request.Context(), req.Amount)
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid amount")
		return
	}
	c.JSON(http.StatusOK, resdto.ConversionResponse{
		Applied:  conv.Applied,
		Quantity: conv.Quantity,
		Estimate: conv.Estimate,
	})
}
