package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// entryMagic starts every file cache entry. It is followed by the expiry as
// big-endian Unix nanoseconds (0 for none) and then the raw value.
var entryMagic = []byte("md3\x01")

const headerLen = 4 + 8

// FileCache stores entries as files under a directory, one subdirectory per
// key kind ("dataset", "artifact", "chart"). Values are stored raw, so large
// PNG and PDF artifacts cost no encoding overhead.
type FileCache struct {
	dir string
}

// NewFileCache creates a FileCache rooted at dir, creating dir if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the value for key. Expired and unreadable entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < headerLen || !bytes.Equal(raw[:4], entryMagic) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(raw[4:headerLen])); exp != 0 && time.Now().UnixNano() > exp {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[headerLen:], true, nil
}

// Set stores data under key. Entries are written to a temporary file and
// renamed into place, so readers never see a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	buf := make([]byte, headerLen, headerLen+len(data))
	copy(buf, entryMagic)
	binary.BigEndian.PutUint64(buf[4:], uint64(exp))
	buf = append(buf, data...)

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. A missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	count := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".entry" {
			count++
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	subdirs, err := os.ReadDir(c.dir)
	if err != nil && !os.IsNotExist(err) {
		return count, err
	}
	for _, sub := range subdirs {
		if sub.IsDir() {
			if err := os.RemoveAll(filepath.Join(c.dir, sub.Name())); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// path maps key to <dir>/<kind>/<hh>/<hash>.entry, where kind is the text
// before the first ':' in key.
func (c *FileCache) path(key string) string {
	kind, _, found := strings.Cut(key, ":")
	if !found || kind == "" || strings.ContainsAny(kind, `/\.`) {
		kind = "misc"
	}
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, kind, hash[:2], hash[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
