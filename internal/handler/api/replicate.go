package api

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"cruise-monitor/internal/handler/httperr"
	"cruise-monitor/internal/infra/replicate"
	"cruise-monitor/internal/pkg/clock"
	"cruise-monitor/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// Record names are flat and lower case; anything else smells like path games.
var replicableName = regexp.MustCompile(`^[a-z0-9._-]+\.json$`)

const maxReplicateBody = 32 << 20

// ReceiveStore is the write-side slice of the record store used by the
// replication receiver.
type ReceiveStore interface {
	ReceiveFile(name string, body []byte, bodyHash string) (bool, error)
}

// ReplicateHandler accepts signed snapshot pushes from the primary host.
type ReplicateHandler struct {
	store ReceiveStore
	cfg   config.ReplicateConfig
	clock clock.Clock
}

func NewReplicateHandler(store ReceiveStore, cfg config.ReplicateConfig, clock clock.Clock) *ReplicateHandler {
	return &ReplicateHandler{store: store, cfg: cfg, clock: clock}
}

// Receive validates the timestamped HMAC signature and stores the record.
// The body answers "OK" when the record changed and "NOCHANGE" when the push
// carried identical bytes.
func (h *ReplicateHandler) Receive(c *gin.Context) {
	if h.cfg.Secret == "" {
		httperr.AbortWithError(c, http.StatusServiceUnavailable, errors.New("replication secret unset"), "Replication disabled", nil)
		return
	}

	name := c.Param("file")
	if !replicableName.MatchString(name) {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("bad record name"), "Invalid record name", nil)
		return
	}

	ts := c.GetHeader("X-TS")
	sig := c.GetHeader("X-SIG")
	if ts == "" || sig == "" {
		httperr.AbortWithError(c, http.StatusForbidden, errors.New("missing signature headers"), "Signature required", nil)
		return
	}
	tsVal, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusForbidden, err, "Invalid timestamp", nil)
		return
	}
	skew := h.clock.Now().Sub(time.Unix(tsVal, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > h.cfg.MaxClockSkew {
		httperr.AbortWithError(c, http.StatusForbidden, errors.New("timestamp outside window"), "Stale signature", nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxReplicateBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read body", nil)
		return
	}

	if !replicate.Verify(h.cfg.Secret, ts, name, body, sig) {
		httperr.AbortWithError(c, http.StatusForbidden, errors.New("signature mismatch"), "Bad signature", nil)
		return
	}

	changed, err := h.store.ReceiveFile(name, body, replicate.BodyHash(body))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to store record", nil)
		return
	}
	if changed {
		c.String(http.StatusOK, "OK")
		return
	}
	c.String(http.StatusOK, "NOCHANGE")
}
