package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubServer fakes the provider: prices maps known symbols to the raw
// price string returned by GLOBAL_QUOTE, names to the SYMBOL_SEARCH match
func newStubServer(t *testing.T, prices, names map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		symbol := r.URL.Query().Get("symbol")
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			price, ok := prices[symbol]
			if !ok {
				// The real API answers 200 with an empty object
				fmt.Fprint(w, `{"Global Quote": {}}`)
				return
			}
			fmt.Fprintf(w, `{"Global Quote": {"05. price": %q}}`, price)
		case "SYMBOL_SEARCH":
			keywords := r.URL.Query().Get("keywords")
			name, ok := names[keywords]
			if !ok {
				fmt.Fprint(w, `{"bestMatches": []}`)
				return
			}
			fmt.Fprintf(w, `{"bestMatches": [{"1. symbol": %q, "2. name": %q}]}`, keywords, name)
		default:
			http.Error(w, "unknown function", http.StatusBadRequest)
		}
	}))
}

func TestLookup(t *testing.T) {
	srv := newStubServer(t,
		map[string]string{"NFLX": "400.0000"},
		map[string]string{"NFLX": "Netflix Inc"},
	)
	defer srv.Close()

	c := New("test-key").SetBaseURL(srv.URL)
	q, err := c.Lookup(context.Background(), "nflx")
	require.NoError(t, err)
	assert.Equal(t, "NFLX", q.Symbol)
	assert.Equal(t, "Netflix Inc", q.Name)
	assert.InDelta(t, 400.00, q.Price, 1e-9)
}

func TestLookupNameFallsBackToSymbol(t *testing.T) {
	srv := newStubServer(t,
		map[string]string{"NFLX": "400.0000"},
		nil, // no search results
	)
	defer srv.Close()

	c := New("test-key").SetBaseURL(srv.URL)
	q, err := c.Lookup(context.Background(), "NFLX")
	require.NoError(t, err)
	assert.Equal(t, "NFLX", q.Name)
}

func TestLookupUnknownSymbol(t *testing.T) {
	srv := newStubServer(t, nil, nil)
	defer srv.Close()

	c := New("test-key").SetBaseURL(srv.URL)
	_, err := c.Lookup(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupRejectsNonPositivePrice(t *testing.T) {
	srv := newStubServer(t,
		map[string]string{"BAD": "0.0000", "WORSE": "not-a-number"},
		nil,
	)
	defer srv.Close()

	c := New("test-key").SetBaseURL(srv.URL)
	for _, symbol := range []string{"BAD", "WORSE"} {
		_, err := c.Lookup(context.Background(), symbol)
		assert.ErrorIs(t, err, ErrNotFound, symbol)
	}
}

func TestLookupEmptySymbol(t *testing.T) {
	c := New("test-key")
	_, err := c.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("test-key").SetBaseURL(srv.URL)
	_, err := c.Lookup(context.Background(), "NFLX")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
