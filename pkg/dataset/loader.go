package dataset

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/matzehuels/minid3/pkg/cache"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/httputil"
	"github.com/matzehuels/minid3/pkg/observability"
)

// Loader reads datasets from files or http(s) URLs.
// The zero value fetches with http.DefaultClient and does not cache.
type Loader struct {
	// Client performs remote fetches. Nil means http.DefaultClient.
	Client *http.Client
	// Cache stores fetched remote datasets. Nil disables caching.
	// Local files are never cached.
	Cache cache.Cache
	// Keyer derives cache keys. Nil means cache.NewDefaultKeyer().
	Keyer cache.Keyer
	// TTL of cached datasets. Zero means cache.TTLDataset.
	TTL time.Duration
	// Attempts bounds remote fetch attempts. Zero means httputil.DefaultAttempts.
	Attempts int
	// Delay is the initial backoff between attempts. Zero means httputil.DefaultDelay.
	Delay time.Duration
}

// Load reads and decodes the dataset at source.
func (l *Loader) Load(ctx context.Context, source string) ([]any, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	rows, err := l.load(ctx, source)
	hooks.OnLoadComplete(ctx, source, len(rows), time.Since(start), err)
	return rows, err
}

func (l *Loader) load(ctx context.Context, source string) ([]any, error) {
	data, err := l.Bytes(ctx, source)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

// Bytes returns the raw content of source without decoding it.
func (l *Loader) Bytes(ctx context.Context, source string) ([]byte, error) {
	if !errors.IsRemote(source) {
		return readFile(source)
	}
	if err := errors.ValidateURL(source); err != nil {
		return nil, err
	}

	key := l.keyer().DatasetKey(source)
	if l.Cache != nil {
		data, hit, err := l.Cache.Get(ctx, key)
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "dataset")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	var data []byte
	err := httputil.Retry(ctx, l.attempts(), l.delay(), func() error {
		var err error
		data, err = httputil.Fetch(ctx, l.Client, source)
		return err
	})
	if err != nil {
		return nil, err
	}
	// Reject undecodable payloads before they are cached.
	if _, err := ParseJSON(data); err != nil {
		return nil, err
	}

	if l.Cache != nil {
		ttl := l.TTL
		if ttl == 0 {
			ttl = cache.TTLDataset
		}
		if err := l.Cache.Set(ctx, key, data, ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "dataset", len(data))
		}
	}
	return data, nil
}

func (l *Loader) keyer() cache.Keyer {
	if l.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return l.Keyer
}

func (l *Loader) attempts() int {
	if l.Attempts == 0 {
		return httputil.DefaultAttempts
	}
	return l.Attempts
}

func (l *Loader) delay() time.Duration {
	if l.Delay == 0 {
		return httputil.DefaultDelay
	}
	return l.Delay
}

func readFile(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read dataset %s", path)
	}
	return data, nil
}
