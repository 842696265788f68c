package api

import (
	"net/http"

	"fleet-console/internal/domain/request"
	reqdto "fleet-console/internal/handler/dto/request"
	resdto "fleet-console/internal/handler/dto/response"
	"fleet-console/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// SearchLocations answers with the predictions held for the field after the
// search. A superseded search answers applied=false.
func (h *ComposerHandler) SearchLocations(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	field, ok := locationField(c)
	if !ok {
		return
	}
	var req reqdto.SearchLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	applied, err := s.Locations().SearchPredictions(c.Request.Context(), field, req.Query)
	if err != nil {
		abortWithUsecaseError(c, err, "Search failed")
		return
	}
	c.JSON(http.StatusOK, resdto.SearchResponse{
		Applied:     applied,
		Predictions: resdto.FromPredictions(s.Draft().Predictions(field)),
	})
}

func (h *ComposerHandler) ResolveLocation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	field, ok := locationField(c)
	if !ok {
		return
	}
	var req reqdto.ResolveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := s.Locations().Resolve(c.Request.Context(), field, req.ToSelection())
	if err != nil {
		abortWithUsecaseError(c, err, "Could not resolve location")
		return
	}
	resp := resdto.ResolutionResponse{Applied: res.Applied}
	if res.Applied {
		resp.Location = resdto.FromLocation(res.Location)
	} else {
		resp.Error = s.Draft().FieldErrors()[request.FieldFor(field)]
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComposerHandler) SetManualAddress(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	field, ok := locationField(c)
	if !ok {
		return
	}
	var req reqdto.ManualAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := s.Locations().SetManualAddress(field, req.Address); err != nil {
		abortWithUsecaseError(c, err, "Could not set address")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraft(s.Draft().Snapshot()))
}

func (h *ComposerHandler) ListSavedLocations(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromSavedLocations(s.Locations().LoadSavedLocations(c.Request.Context())))
}
