package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

func (l *Loader) readHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spl loader: %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
