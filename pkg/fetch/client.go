// Package fetch talks to the public bioinformatics REST services the
// pipeline enriches from: UniProt, InterPro, PDBe, AlphaFold and RCSB.
// Every call is a plain JSON GET with a hard timeout; a non-2xx response is
// an error the caller treats as "no data", never retried.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultUniProtBase   = "https://rest.uniprot.org"
	DefaultInterProBase  = "https://www.ebi.ac.uk/interpro/api"
	DefaultPDBeBase      = "https://www.ebi.ac.uk/pdbe/api"
	DefaultAlphaFoldBase = "https://alphafold.ebi.ac.uk"
	DefaultRCSBBase      = "https://files.rcsb.org"
)

type Client struct {
	httpClient *http.Client
	userAgent  string
	rateDelay  time.Duration

	// Bases are variable so tests can point at a local server.
	UniProtBase   string
	InterProBase  string
	PDBeBase      string
	AlphaFoldBase string
	RCSBBase      string
}

func NewClient(timeout, rateDelay time.Duration, userAgent string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		userAgent:     userAgent,
		rateDelay:     rateDelay,
		UniProtBase:   DefaultUniProtBase,
		InterProBase:  DefaultInterProBase,
		PDBeBase:      DefaultPDBeBase,
		AlphaFoldBase: DefaultAlphaFoldBase,
		RCSBBase:      DefaultRCSBBase,
	}
}

// Pause sleeps the configured inter-call delay. Fixed, not adaptive: the
// public services only ask for polite spacing.
func (c *Client) Pause() {
	if c.rateDelay > 0 {
		time.Sleep(c.rateDelay)
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: HTTP %d", url, resp.StatusCode)
	}
	return resp, nil
}

// decodeBody reads a response body (bounded) and unmarshals it into v.
func decodeBody(r io.Reader, v any) error {
	body, err := io.ReadAll(io.LimitReader(r, 32<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// getJSON fetches url and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
