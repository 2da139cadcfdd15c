package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/minid3/pkg/buildinfo"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/observability"
)

// MaxBodySize bounds the number of bytes Fetch reads from a response.
const MaxBodySize = 32 << 20

// UserAgent is sent with every request.
var UserAgent = buildinfo.UserAgent()

// Fetch performs a GET request and returns the response body.
// Transport errors, 5xx and 429 responses come back wrapped in RetryableError.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", url)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "fetch %s: %s", url, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status))
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	if len(body) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fetch %s: body exceeds %s", url, humanBytes(MaxBodySize))
	}
	return body, nil
}

func humanBytes(n int) string {
	return fmt.Sprintf("%d MiB", n>>20)
}
