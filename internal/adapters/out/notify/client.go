// Package notify contains outbound HTTP clients for the collaborators that
// react to order lifecycle changes: email delivery, receipt issuing, and
// inventory release. Failed calls surface as ExternalServiceError values so
// callers can log and move on without failing the order operation.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ordering/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// postJSON performs one JSON POST and maps transport and non-2xx failures to
// an ExternalServiceError for the named collaborator.
func postJSON(ctx context.Context, client *http.Client, service string, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errs.NewExternalServiceError(service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return errs.NewExternalServiceError(service, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errs.NewExternalServiceError(service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.NewExternalServiceError(service, fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}
