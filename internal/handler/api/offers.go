package api

import (
	"net/http"
	"strconv"

	resdto "cruise-monitor/internal/handler/dto/response"
	"cruise-monitor/internal/handler/httperr"
	"cruise-monitor/internal/pkg/errs"
	"cruise-monitor/internal/usecase/commands"
	"cruise-monitor/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OffersHandler struct {
	q    queries.OfferQueries
	cmds commands.UpdateCommands
}

func NewOffersHandler(q queries.OfferQueries, cmds commands.UpdateCommands) *OffersHandler {
	return &OffersHandler{q: q, cmds: cmds}
}

// List serves the enriched offer table with optional filters: ship, a start
// date window, a nights range and a minimum cabin category.
func (h *OffersHandler) List(c *gin.Context) {
	params := queries.ListParams{
		Adults:   intQuery(c, "adults", 1),
		Ship:     c.Query("ship"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		MinDays:  intQuery(c, "minDays", 0),
		MaxDays:  intQuery(c, "maxDays", 0),
		MinCabin: c.Query("minCabin"),
	}

	view, err := h.q.List(c.Request.Context(), params)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load offers", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferListView(view))
}

// History serves the recorded price curve of one journey, per cabin category.
func (h *OffersHandler) History(c *gin.Context) {
	journeyID := c.Param("id")
	if journeyID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("empty journey id"), "Invalid journey id", nil)
		return
	}

	view, err := h.q.History(c.Request.Context(), intQuery(c, "adults", 1), journeyID)
	if err != nil {
		if errs.Is(err, queries.ErrJourneyNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown journey", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load history", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHistoryView(view))
}

// TriggerUpdate runs one update pass synchronously. Concurrent triggers for
// the same party size answer 409.
func (h *OffersHandler) TriggerUpdate(c *gin.Context) {
	adults := intQuery(c, "adults", 2)

	result, err := h.cmds.Run(c.Request.Context(), adults)
	if err != nil {
		if errs.Is(err, commands.ErrUpdateInProgress) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Update already running", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Update failed", nil)
		return
	}
	c.JSON(http.StatusOK, result)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	iv, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return iv
}
