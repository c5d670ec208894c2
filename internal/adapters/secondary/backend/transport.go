package backend

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-ID"

// requestIDTransport tags every outbound request with an X-Request-ID and
// logs its outcome.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
		req = req.Clone(req.Context())
		req.Header.Set(headerRequestID, requestID)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := log.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"latency_ms": time.Since(start).Milliseconds(),
		"request_id": requestID,
	}
	if err != nil {
		log.WithError(err).WithFields(fields).Debug("backend request failed")
		return nil, err
	}
	fields["status"] = resp.StatusCode
	log.WithFields(fields).Debug("backend request completed")
	return resp, nil
}
