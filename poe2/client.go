// Package poe2 fetches trade history, active listings and currency
// exchange snapshots from the Path of Exile 2 trade site and from
// poe2scout. It is the external collaborator of the accounting core: it
// only produces raw currency facts, never touches the ledger.
package poe2

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	historyURLFmt = "https://www.pathofexile.com/api/trade2/history/%s"
	searchURLFmt  = "https://www.pathofexile.com/api/trade2/search/poe2/%s"
	fetchURLFmt   = "https://www.pathofexile.com/api/trade2/fetch/%s?query=%s&realm=poe2"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	maxRetries = 3
	// Above this the server is telling us to come back much later;
	// abort the fetch and keep the run going on stale data.
	maxRetryAfter = 30 * time.Second
)

// ErrRateLimited reports that a fetch was abandoned because the server
// asked for a longer pause than a batch run tolerates. The specific
// fetch is skipped, not the whole run.
var ErrRateLimited = errors.New("rate limited")

// Client is an authenticated session against the official trade API.
type Client struct {
	http    *http.Client
	session string // POESESSID cookie value
	league  string
	account string

	// sleep is replaceable in tests.
	sleep func(time.Duration)

	// base URLs, replaceable in tests.
	historyURL string
	searchURL  string
	fetchURL   string
}

// NewClient builds a trade-API client for one league and account.
func NewClient(poesessid, league, account string) *Client {
	return &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		session:    poesessid,
		league:     league,
		account:    account,
		sleep:      time.Sleep,
		historyURL: fmt.Sprintf(historyURLFmt, url.PathEscape(league)),
		searchURL:  fmt.Sprintf(searchURLFmt, url.PathEscape(league)),
		fetchURL:   fetchURLFmt,
	}
}

// do performs a request with rate-limit retry and backoff: on 429 it
// sleeps for the server-specified interval and tries again, up to
// maxRetries attempts.
func (c *Client) do(method, addr string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, err
		}
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest(method, addr, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.AddCookie(&http.Cookie{Name: "POESESSID", Value: c.session})

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			wait := retryAfter(resp)
			if wait > maxRetryAfter {
				return nil, fmt.Errorf("%w: server asked for %s, skipping", ErrRateLimited, wait)
			}
			log.Printf("rate limited, waiting %s (attempt %d/%d)", wait, attempt, maxRetries)
			c.sleep(wait)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("%s %s: %s", method, resp.Request.URL.Path, resp.Status)
		}
		return resp, nil
	}
	return nil, fmt.Errorf("%w: gave up after %d attempts", ErrRateLimited, maxRetries)
}

// jget performs a GET through the retry loop and decodes the JSON body.
func (c *Client) jget(addr string, data any) error {
	resp, err := c.do(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, data)
}

func decodeBody(resp *http.Response, data any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(data)
}

func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}
