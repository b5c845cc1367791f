// Package external contains the outbound HTTP clients for the third-party
// providers the API enriches its responses from: the skill-stats provider and
// the packing-list provider. Every failure is reported wrapped in
// domain.ErrExternalService.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/talentrail/internal/domain"
)

// DefaultTimeout bounds every outbound call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of a non-2xx response body ends up in the error.
const maxErrorBody = 4096

// NewHTTPClient returns the http.Client shared by the provider clients.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON issues a GET to endpoint and decodes a 2xx JSON body into out.
func getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrExternalService, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", domain.ErrExternalService, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: status=%d body=%s",
			domain.ErrExternalService, endpoint, resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: GET %s: decode response: %w", domain.ErrExternalService, endpoint, err)
	}
	return nil
}

func trimBase(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}
