package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/angelcm/campaign-report-go/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// FetchCSV downloads a CSV table from url, retrying transient failures with
// backoff.
func FetchCSV(ctx context.Context, c HTTPClient, url string) (*RawTable, error) {
	var t *RawTable
	bo := utils.NewBackoff(100*time.Millisecond, 2)
	err := bo.Do(func(i int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(b))
		}
		t, err = ReadCSV(resp.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return t, nil
}
