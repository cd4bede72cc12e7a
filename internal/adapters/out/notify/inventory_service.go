package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"
)

// HTTPInventoryService manages stock reservations through the inventory
// collaborator's HTTP API.
type HTTPInventoryService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPInventoryService creates a client for the given collaborator
// base URL. A nil client falls back to a default with a request timeout.
func NewHTTPInventoryService(baseURL string, client *http.Client) (*HTTPInventoryService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("inventory service base url is required")
	}
	if client == nil {
		client = defaultHTTPClient()
	}

	return &HTTPInventoryService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}, nil
}

type inventoryRequest struct {
	OrderID string `json:"order_id"`
}

// Reserve holds the stock for a newly created order.
func (s *HTTPInventoryService) Reserve(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	request := inventoryRequest{OrderID: orderID.String()}
	return postJSON(ctx, s.client, "inventory", s.baseURL+"/reservations", request)
}

// Release frees the stock reserved for the order.
func (s *HTTPInventoryService) Release(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	request := inventoryRequest{OrderID: orderID.String()}
	return postJSON(ctx, s.client, "inventory", s.baseURL+"/reservations/release", request)
}
