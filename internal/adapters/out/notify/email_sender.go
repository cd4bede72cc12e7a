package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"
)

// HTTPEmailSender delivers customer notices through the email collaborator's
// HTTP API.
type HTTPEmailSender struct {
	baseURL string
	client  *http.Client
}

// NewHTTPEmailSender creates a sender for the given collaborator base URL.
// A nil client falls back to a default with a request timeout.
func NewHTTPEmailSender(baseURL string, client *http.Client) (*HTTPEmailSender, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("email service base url is required")
	}
	if client == nil {
		client = defaultHTTPClient()
	}

	return &HTTPEmailSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}, nil
}

type sendEmailRequest struct {
	CustomerID string `json:"customer_id"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// Send delivers one notice addressed by customer id.
func (s *HTTPEmailSender) Send(ctx context.Context, customerID kernel.UUID, subject string, body string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	request := sendEmailRequest{
		CustomerID: customerID.String(),
		Subject:    subject,
		Body:       body,
	}
	return postJSON(ctx, s.client, "email", s.baseURL+"/notifications/email", request)
}
