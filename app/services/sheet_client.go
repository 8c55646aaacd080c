// Package services holds the outward-facing clients and infrastructure
// helpers used by the business flows.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SheetClient fetches the published pricing sheet as raw delimited text.
type SheetClient interface {
	FetchSheet(ctx context.Context, sheetID string, sheetName string) (string, error)
}

type httpSheetClient struct {
	httpClient *http.Client
	baseURL    string
}

const defaultSheetBaseURL = "https://docs.google.com/spreadsheets/d"

// NewHTTPSheetClient returns a SheetClient backed by the Google Sheets CSV
// export endpoint. An empty baseURL uses the public endpoint.
func NewHTTPSheetClient(timeout time.Duration, baseURL string) SheetClient {
	if baseURL == "" {
		baseURL = defaultSheetBaseURL
	}
	return &httpSheetClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (c *httpSheetClient) FetchSheet(ctx context.Context, sheetID string, sheetName string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s",
		c.baseURL, url.PathEscape(sheetID), url.QueryEscape(sheetName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("sheet endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet body: %w", err)
	}
	return string(body), nil
}
