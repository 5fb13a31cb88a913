//go:build unit

package replicate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cruise-monitor/internal/pkg/config"
)

type stubSource struct {
	files map[string][]byte
}

func (s *stubSource) ReplicableFiles() ([]string, error) {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names, nil
}

func (s *stubSource) ReadRaw(name string) ([]byte, error) {
	return s.files[name], nil
}

func TestSignAndVerify(t *testing.T) {
	body := []byte(`{"count":1}`)
	sig := Sign("secret", "1700000000", "offers_adults2.json", body)

	assert.True(t, Verify("secret", "1700000000", "offers_adults2.json", body, sig))
	assert.False(t, Verify("secret", "1700000001", "offers_adults2.json", body, sig), "timestamp is part of the signature")
	assert.False(t, Verify("secret", "1700000000", "offers_adults3.json", body, sig), "record name is part of the signature")
	assert.False(t, Verify("other", "1700000000", "offers_adults2.json", body, sig))
}

func TestUploadAll_SignsEachRequest(t *testing.T) {
	body := []byte(`{"count":2}`)
	var gotFile, gotTS, gotSig string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFile = r.URL.Query().Get("file")
		gotTS = r.Header.Get("X-TS")
		gotSig = r.Header.Get("X-SIG")
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = buf
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	cfg := config.ReplicateConfig{Enabled: true, BaseURL: srv.URL, Secret: "secret", Timeout: 0}
	up := NewUploader(cfg, &stubSource{files: map[string][]byte{"offers_adults2.json": body}}, slog.Default())

	err := up.UploadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "offers_adults2.json", gotFile)
	assert.Equal(t, body, gotBody)
	assert.True(t, Verify("secret", gotTS, gotFile, gotBody, gotSig))
}

func TestUploadAll_ContinuesAfterRejection(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("bad signature"))
	}))
	defer srv.Close()

	cfg := config.ReplicateConfig{Enabled: true, BaseURL: srv.URL, Secret: "secret"}
	up := NewUploader(cfg, &stubSource{files: map[string][]byte{
		"offers_adults2.json":  []byte("{}"),
		"history_adults2.json": []byte("{}"),
	}}, slog.Default())

	err := up.UploadAll(context.Background())
	require.NoError(t, err, "per-file failures are logged, not returned")
	assert.Equal(t, 2, calls)
}
