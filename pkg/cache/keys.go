package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys for the values the pipeline caches.
type Keyer interface {
	// DatasetKey returns the key for the raw bytes fetched from source,
	// a file path or URL.
	DatasetKey(source string) string
	// ArtifactKey returns the key for one rendered output of a chart whose
	// configuration and data hash to inputHash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that distinguish artifacts built
// from the same inputs.
type ArtifactKeyOpts struct {
	Template string  `json:"template"`
	Format   string  `json:"format"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey returns "dataset:" followed by source.
func (DefaultKeyer) DatasetKey(source string) string {
	return "dataset:" + source
}

// ArtifactKey hashes inputHash together with opts.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// hashKey joins prefix and the SHA-256 of the JSON encoding of parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
