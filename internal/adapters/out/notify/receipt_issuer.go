package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// HTTPReceiptIssuer requests fiscal receipts from the receipt collaborator's
// HTTP API.
type HTTPReceiptIssuer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPReceiptIssuer creates an issuer for the given collaborator base URL.
// A nil client falls back to a default with a request timeout.
func NewHTTPReceiptIssuer(baseURL string, client *http.Client) (*HTTPReceiptIssuer, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("receipt service base url is required")
	}
	if client == nil {
		client = defaultHTTPClient()
	}

	return &HTTPReceiptIssuer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}, nil
}

type issueReceiptRequest struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Amount      int64  `json:"amount"`
}

// Issue requests a receipt for a paid order and returns the collaborator's
// raw response body. The amount is in integer minor currency units.
func (i *HTTPReceiptIssuer) Issue(ctx context.Context, orderID kernel.UUID, orderNumber string, amount kernel.Money) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}

	request := issueReceiptRequest{
		OrderID:     orderID.String(),
		OrderNumber: orderNumber,
		Amount:      amount.Int64(),
	}
	data, err := json.Marshal(request)
	if err != nil {
		return "", errs.NewExternalServiceError("receipt", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/receipts", bytes.NewReader(data))
	if err != nil {
		return "", errs.NewExternalServiceError("receipt", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return "", errs.NewExternalServiceError("receipt", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewExternalServiceError("receipt", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errs.NewExternalServiceError("receipt",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(payload)))
	}
	return string(payload), nil
}
