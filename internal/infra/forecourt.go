package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ForecourtSnapshot is returned by the forecourt controller for one quart:
// the theoretical ending index per tank (from the pump totalizers) and the
// theoretical cash amount per drawer (from the sales system).
type ForecourtSnapshot struct {
	IndexesTheoriques map[string]decimal.Decimal `json:"indexes_theoriques"` // citerne_id → index
	VentesTheoriques  map[string]decimal.Decimal `json:"ventes_theoriques"`  // caisse_id → montant
}

// ForecourtClient queries the forecourt controller over HTTP. All calls run
// through a circuit breaker so a dead controller fails fast instead of
// blocking every shift opening.
type ForecourtClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewForecourtClient(baseURL string) *ForecourtClient {
	return &ForecourtClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Snapshot fetches the theoretical values for the given date and quart label.
func (c *ForecourtClient) Snapshot(ctx context.Context, date, libelle string) (*ForecourtSnapshot, error) {
	var snap ForecourtSnapshot
	err := c.cb.Execute(func() error {
		url := fmt.Sprintf("%s/snapshot?date=%s&quart=%s", c.baseURL, date, libelle)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("forecourt: create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("forecourt: controller unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("forecourt: controller returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("forecourt: decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// State exposes the circuit breaker state for the health endpoint.
func (c *ForecourtClient) State() string { return c.cb.State().String() }
