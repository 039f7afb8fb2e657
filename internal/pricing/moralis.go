// Package pricing integrates external USD price oracles.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// MoralisClient resolves token prices through the Moralis Solana gateway.
type MoralisClient struct {
	Base   string
	APIKey string
	Http   *http.Client
}

// NewMoralisClient builds a client for the given gateway base URL.
func NewMoralisClient(base, apiKey string) *MoralisClient {
	return &MoralisClient{
		Base:   base,
		APIKey: apiKey,
		Http:   &http.Client{Timeout: 8 * time.Second},
	}
}

// GetUsdPrice fetches the current USD unit price for mint on the given
// network. The gateway quotes with four decimals of precision, so a
// genuinely tiny price can come back as exactly zero; callers decide what a
// zero means.
func (m *MoralisClient) GetUsdPrice(ctx context.Context, network string, mint solana.PublicKey) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/token/%s/%s/price", m.Base, network, mint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", m.APIKey)

	resp, err := m.Http.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("moralis price status %d", resp.StatusCode)
	}

	var out struct {
		UsdPrice decimal.Decimal `json:"usdPrice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Zero, err
	}
	return out.UsdPrice, nil
}
