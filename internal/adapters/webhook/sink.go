// Package webhook posts submission records as JSON to a fixed HTTP endpoint.
//
// The endpoint is treated as acknowledgement-blind: the response status and
// body are discarded unread, so only a failure to build or send the request
// is reported. Apps Script web apps behave this way when called cross-origin.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

type Sink struct {
	url    string
	client *http.Client
	// StrictStatus turns non-2xx responses into errors. Off by default to
	// keep the endpoint acknowledgement-blind.
	StrictStatus bool
}

// New returns a sink for url. A nil client uses http.DefaultClient.
func New(url string, client *http.Client) *Sink {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sink{url: url, client: client}
}

// Send posts one record. It does not retry.
func (s *Sink) Send(ctx context.Context, rec domain.SubmissionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if s.StrictStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return fmt.Errorf("sink responded %s", resp.Status)
	}
	return nil
}
