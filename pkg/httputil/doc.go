// Package httputil fetches remote datasets over HTTP.
//
// # Overview
//
//   - [Fetch]: GET a URL and return the body, classifying failures
//   - [Retry]: retry an operation with exponential backoff
//
// Transient failures (transport errors, 5xx responses, 429 Too Many
// Requests) are wrapped in [RetryableError] so that [Retry] attempts them
// again; client errors fail immediately:
//
//	var body []byte
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    var err error
//	    body, err = httputil.Fetch(ctx, http.DefaultClient, url)
//	    return err
//	})
//
// Errors carry codes from pkg/errors: NETWORK_ERROR for transport and server
// failures, NOT_FOUND for 404, TIMEOUT when the context deadline expires.
package httputil
