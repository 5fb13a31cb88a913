//go:build unit

package api_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cruise-monitor/internal/handler/api"
	"cruise-monitor/internal/infra/replicate"
	"cruise-monitor/internal/pkg/clock"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/tests/common/httptest"
)

type fakeReceiveStore struct {
	received map[string][]byte
	changed  bool
}

func (f *fakeReceiveStore) ReceiveFile(name string, body []byte, _ string) (bool, error) {
	if f.received == nil {
		f.received = map[string][]byte{}
	}
	f.received[name] = body
	return f.changed, nil
}

var receiveNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func newReplicateRouter(store *fakeReceiveStore, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.ReplicateConfig{Secret: secret, MaxClockSkew: 5 * time.Minute}
	h := api.NewReplicateHandler(store, cfg, clock.NewMockClock(receiveNow))

	router := gin.New()
	router.POST("/internal/replicate/:file", h.Receive)
	return router
}

func signedHeaders(secret, name string, body []byte, at time.Time) map[string]string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return map[string]string{
		"X-TS":  ts,
		"X-SIG": replicate.Sign(secret, ts, name, body),
	}
}

func TestReceive_StoresSignedPush(t *testing.T) {
	store := &fakeReceiveStore{changed: true}
	router := newReplicateRouter(store, "secret")
	body := []byte(`{"count":3}`)

	rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/offers_adults2.json",
		body, signedHeaders("secret", "offers_adults2.json", body, receiveNow))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.Equal(t, body, store.received["offers_adults2.json"])
}

func TestReceive_AnswersNoChangeForIdenticalBytes(t *testing.T) {
	store := &fakeReceiveStore{changed: false}
	router := newReplicateRouter(store, "secret")
	body := []byte(`{"count":3}`)

	rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/offers_adults2.json",
		body, signedHeaders("secret", "offers_adults2.json", body, receiveNow))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NOCHANGE", rec.Body.String())
}

func TestReceive_RejectsBadSignature(t *testing.T) {
	store := &fakeReceiveStore{}
	router := newReplicateRouter(store, "secret")
	body := []byte(`{"count":3}`)

	headers := signedHeaders("wrong-secret", "offers_adults2.json", body, receiveNow)
	rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/offers_adults2.json", body, headers)

	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Bad signature")
	assert.Empty(t, store.received, "nothing is written on a failed check")
}

func TestReceive_RejectsStaleTimestamp(t *testing.T) {
	router := newReplicateRouter(&fakeReceiveStore{}, "secret")
	body := []byte(`{}`)

	headers := signedHeaders("secret", "offers_adults2.json", body, receiveNow.Add(-10*time.Minute))
	rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/offers_adults2.json", body, headers)

	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Stale signature")
}

func TestReceive_RejectsMissingHeaders(t *testing.T) {
	router := newReplicateRouter(&fakeReceiveStore{}, "secret")

	rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/offers_adults2.json", []byte(`{}`), nil)

	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Signature required")
}

func TestReceive_RejectsBadRecordNames(t *testing.T) {
	router := newReplicateRouter(&fakeReceiveStore{}, "secret")
	body := []byte(`{}`)

	for _, name := range []string{"UPPER.json", "offers.txt", "weird$name.json"} {
		rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/"+name,
			body, signedHeaders("secret", name, body, receiveNow))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "name %q must be rejected", name)
	}
}

func TestReceive_DisabledWithoutSecret(t *testing.T) {
	router := newReplicateRouter(&fakeReceiveStore{}, "")

	rec := httptest.PerformRaw(t, router, http.MethodPost, "/internal/replicate/offers_adults2.json", []byte(`{}`), nil)

	httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Replication disabled")
}
