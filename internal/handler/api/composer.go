package api

import (
	"net/http"

	"fleet-console/internal/domain/request"
	reqdto "fleet-console/internal/handler/dto/request"
	resdto "fleet-console/internal/handler/dto/response"
	"fleet-console/internal/handler/httperr"
	"fleet-console/internal/usecase/composer"

	"github.com/gin-gonic/gin"
)

type ComposerHandler struct {
	sessions composer.Sessions
}

func NewComposerHandler(sessions composer.Sessions) *ComposerHandler {
	return &ComposerHandler{sessions: sessions}
}

// Open starts a composer with a default draft for the requested kind.
func (h *ComposerHandler) Open(c *gin.Context) {
	var req reqdto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.sessions.Open(request.ServiceKind(req.Kind))
	if err != nil {
		abortWithUsecaseError(c, err, "Could not open composer")
		return
	}
	c.Header("Location", "/api/composer/sessions/"+s.ID())
	c.JSON(http.StatusCreated, resdto.FromView(s.View()))
}

func (h *ComposerHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromView(s.View()))
}

// Discard cancels the composer. The draft is not kept.
func (h *ComposerHandler) Discard(c *gin.Context) {
	if !h.sessions.Close(c.Param("id")) {
		abortWithUsecaseError(c, composer.ErrSessionNotFound, "")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComposerHandler) PatchDraft(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.PatchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := s.Draft().Apply(req.ToPatch()); err != nil {
		abortWithUsecaseError(c, err, "Could not update draft")
		return
	}
	if ft := req.GetFuelType(); ft != nil {
		if err := s.Quantity().SelectFuelType(c.Request.Context(), *ft); err != nil {
			abortWithUsecaseError(c, err, "Could not select fuel type")
			return
		}
	}
	c.JSON(http.StatusOK, resdto.FromView(s.View()))
}

func (h *ComposerHandler) ListAssets(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	assets := s.Assets(c.Request.Context())
	c.JSON(http.StatusOK, resdto.FromAssets(assets, s.Draft().Snapshot().Assets))
}

func (h *ComposerHandler) ToggleAsset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Draft().ToggleAsset(c.Param("assetId"))
	c.JSON(http.StatusOK, resdto.FromDraft(s.Draft().Snapshot()))
}

func (h *ComposerHandler) ListTimeSlots(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	day, err := s.Slots().ParseDate(c.Query("date"))
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid date")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOptions(s.Slots().Generate(day)))
}

func (h *ComposerHandler) SetTimeSlot(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	slot := request.Immediate()
	if !req.Immediate {
		if req.StartHour == nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingStartHour, "Invalid request", nil)
			return
		}
		day, err := s.Slots().ParseDate(req.Date)
		if err != nil {
			abortWithUsecaseError(c, err, "Invalid date")
			return
		}
		slot, err = s.Slots().Lookup(day, *req.StartHour)
		if err != nil {
			abortWithUsecaseError(c, err, "Time window is not available")
			return
		}
	}
	s.Draft().SetTimeSlot(slot)
	c.JSON(http.StatusOK, resdto.FromDraft(s.Draft().Snapshot()))
}

// Validate records the field errors on the draft and always answers 200; the
// body says whether the draft may be submitted.
func (h *ComposerHandler) Validate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	fe := s.Validate()
	c.JSON(http.StatusOK, resdto.ValidationResponse{
		Valid:       fe.IsEmpty(),
		FieldErrors: resdto.FromFieldErrors(fe),
	})
}

func (h *ComposerHandler) session(c *gin.Context) (*composer.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithUsecaseError(c, err, "")
		return nil, false
	}
	return s, true
}

func locationField(c *gin.Context) (request.LocationField, bool) {
	f := request.LocationField(c.Param("field"))
	if !f.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errUnknownLocationField, "Unknown location field", nil)
		return "", false
	}
	return f, true
}
