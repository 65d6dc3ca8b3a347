package poe2

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// testClient wires a client to a test server with sleeps recorded
// instead of slept.
func testClient(t *testing.T, handler http.Handler) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var sleeps []time.Duration
	c := NewClient("session", "Standard", "account")
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	c.historyURL = srv.URL + "/history"
	c.searchURL = srv.URL + "/search"
	c.fetchURL = srv.URL + "/fetch?ids=%s&query=%s"
	return c, &sleeps
}

func testRates(t *testing.T) fund.Rates {
	t.Helper()
	return fund.Rates{
		fund.Divine: decimal.NewFromInt(1),
		"exalted":   decimal.RequireFromString("0.0125"),
	}
}

func TestClientSendsSessionCookie(t *testing.T) {
	var gotCookie, gotAgent string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("POESESSID"); err == nil {
			gotCookie = cookie.Value
		}
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"result": []}`))
	}))

	if _, err := c.TradeHistory(testRates(t)); err != nil {
		t.Fatal(err)
	}
	if gotCookie != "session" {
		t.Errorf("POESESSID cookie = %q, want %q", gotCookie, "session")
	}
	if gotAgent == "" {
		t.Error("request sent without a User-Agent")
	}
}

func TestClientRetriesOn429(t *testing.T) {
	var calls atomic.Int32
	c, sleeps := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"result": []}`))
	}))

	if _, err := c.TradeHistory(testRates(t)); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("server called %d times, want 2", calls.Load())
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != 2*time.Second {
		t.Errorf("sleeps = %v, want [2s]", *sleeps)
	}
}

func TestClientSkipsLongRetryAfter(t *testing.T) {
	c, sleeps := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.TradeHistory(testRates(t))
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if len(*sleeps) != 0 {
		t.Errorf("waited %v instead of skipping", *sleeps)
	}
}

func TestClientGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.TradeHistory(testRates(t))
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if calls.Load() != maxRetries {
		t.Errorf("server called %d times, want %d", calls.Load(), maxRetries)
	}
}

func TestClientDefaultRetryAfter(t *testing.T) {
	// A 429 without the header: the default pause is a minute, above
	// the fetch-abort threshold.
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	if _, err := c.TradeHistory(testRates(t)); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
}

func TestClientErrorsOnNon200(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	if _, err := c.TradeHistory(testRates(t)); err == nil {
		t.Fatal("expected an error on 403")
	}
}
