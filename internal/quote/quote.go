package quote

import (
	"context" // Request context
	"errors"  // Sentinel error
	"fmt"     // Error wrapping
	"strconv" // Price parsing
	"strings" // Symbol normalization

	"github.com/go-resty/resty/v2" // HTTP client
)

const defaultBaseURL = "https://www.alphavantage.co"

// ErrNotFound is returned when the provider has no price for a symbol
var ErrNotFound = errors.New("quote: symbol not found")

// Quote is a point-in-time price and display name for a stock symbol
type Quote struct {
	Name   string  // Company display name
	Symbol string  // Upper-cased symbol
	Price  float64 // Positive unit price
}

// Service is the lookup surface handlers depend on; tests substitute a
// stub with fixed prices.
type Service interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// Client looks up quotes against the Alpha Vantage API. Each call is
// independent: no caching, no retries, no deadline beyond the caller's.
type Client struct {
	http   *resty.Client // Underlying HTTP client
	apiKey string        // Provider API key
}

// New builds a quote client for the given API key
func New(apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(defaultBaseURL),
		apiKey: apiKey,
	}
}

// SetBaseURL points the client at a different endpoint (used by tests)
func (c *Client) SetBaseURL(url string) *Client {
	c.http.SetBaseURL(url)
	return c
}

// globalQuoteResponse mirrors the provider's GLOBAL_QUOTE payload
type globalQuoteResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// symbolSearchResponse mirrors the provider's SYMBOL_SEARCH payload
type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol string `json:"1. symbol"`
		Name   string `json:"2. name"`
	} `json:"bestMatches"`
}

// Lookup normalizes the symbol, fetches its current price and resolves a
// display name. Unknown symbols return ErrNotFound; transport failures
// return a wrapped error.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrNotFound
	}

	var out globalQuoteResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		SetResult(&out).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("quote: fetch %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("quote: fetch %s: status %d", symbol, resp.StatusCode())
	}

	// The provider answers 200 with an empty quote object for unknown symbols
	if out.GlobalQuote.Price == "" {
		return nil, ErrNotFound
	}
	price, err := strconv.ParseFloat(out.GlobalQuote.Price, 64)
	if err != nil || price <= 0 {
		return nil, ErrNotFound
	}

	return &Quote{
		Name:   c.companyName(ctx, symbol),
		Symbol: symbol,
		Price:  price,
	}, nil
}

// companyName resolves a display name via SYMBOL_SEARCH, falling back to
// the symbol itself when the search fails or has no exact match
func (c *Client) companyName(ctx context.Context, symbol string) string {
	var out symbolSearchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "SYMBOL_SEARCH",
			"keywords": symbol,
			"apikey":   c.apiKey,
		}).
		SetResult(&out).
		Get("/query")
	if err != nil || resp.StatusCode() != 200 {
		return symbol
	}
	for _, m := range out.BestMatches {
		if strings.EqualFold(m.Symbol, symbol) && m.Name != "" {
			return m.Name
		}
	}
	return symbol
}
