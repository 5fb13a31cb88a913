package replicate

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
)

// FileSource exposes the snapshot records the uploader mirrors.
type FileSource interface {
	ReplicableFiles() ([]string, error)
	ReadRaw(name string) ([]byte, error)
}

// Uploader pushes snapshot records to a mirror host. Requests are
// authenticated with an HMAC-SHA256 signature over timestamp, record name and
// body so the receiver can reject stale or tampered pushes.
type Uploader struct {
	cfg    config.ReplicateConfig
	src    FileSource
	http   *http.Client
	logger *slog.Logger
}

func NewUploader(cfg config.ReplicateConfig, src FileSource, logger *slog.Logger) *Uploader {
	return &Uploader{
		cfg:    cfg,
		src:    src,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// UploadAll mirrors every replicable record. Individual failures are logged
// and do not stop the remaining uploads.
func (u *Uploader) UploadAll(ctx context.Context) error {
	names, err := u.src.ReplicableFiles()
	if err != nil {
		return err
	}
	for _, name := range names {
		changed, err := u.uploadOne(ctx, name)
		if err != nil {
			u.logger.Warn("replication upload failed", "file", name, "error", err)
			continue
		}
		if changed {
			u.logger.Info("replicated snapshot record", "file", name)
		}
	}
	return nil
}

func (u *Uploader) uploadOne(ctx context.Context, name string) (bool, error) {
	body, err := u.src.ReadRaw(name)
	if err != nil {
		return false, err
	}

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := Sign(u.cfg.Secret, ts, name, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		u.cfg.BaseURL+"?file="+url.QueryEscape(name), bytes.NewReader(body))
	if err != nil {
		return false, errs.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-TS", ts)
	req.Header.Set("X-SIG", sig)

	resp, err := u.http.Do(req)
	if err != nil {
		return false, errs.Wrap(err, "upload request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, errs.Wrap(err, "failed to read upload response")
	}
	if resp.StatusCode != http.StatusOK {
		return false, errs.New(fmt.Sprintf("upload rejected: %d %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}
	return strings.TrimSpace(string(respBody)) == "OK", nil
}

// Sign computes the base64 HMAC-SHA256 signature over ts, record name and
// body, newline-separated. Uploader and receiver share this format.
func Sign(secret, ts, name string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("\n"))
	mac.Write([]byte(name))
	mac.Write([]byte("\n"))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature in constant time.
func Verify(secret, ts, name string, body []byte, sig string) bool {
	expected := Sign(secret, ts, name, body)
	return hmac.Equal([]byte(expected), []byte(sig))
}

// BodyHash returns the hex sha256 of a record body, used for the receiver's
// no-change sidecar.
func BodyHash(body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("%x", sum)
}
