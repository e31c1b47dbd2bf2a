package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/filesystem"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/network"
	"github.com/vidswitch/vidswitch/where"
)

type cachedManifest struct {
	URL  string `json:"url"`
	Body string `json:"body"`
}

// cacheTTL returns the configured manifest lifetime. Zero or invalid disables caching.
func cacheTTL() time.Duration {
	ttl, err := time.ParseDuration(viper.GetString(key.ManifestCacheTTL))
	if err != nil {
		log.Warnf("invalid %s: %v", key.ManifestCacheTTL, err)
		return 0
	}
	return ttl
}

// cachePath maps a manifest URL to its cache file.
func cachePath(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return filepath.Join(where.Manifests(), hex.EncodeToString(sum[:8])+".json")
}

// Fetch downloads a remote manifest, serving it from the cache while it is fresh.
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ttl := cacheTTL()
	if ttl <= 0 {
		return download(ctx, rawURL)
	}

	cacher := gache.New[*cachedManifest](&gache.Options{
		Path:       cachePath(rawURL),
		Lifetime:   ttl,
		FileSystem: &filesystem.GacheFs{},
	})

	cached, expired, err := cacher.Get()
	if err == nil && !expired && cached != nil && cached.URL == rawURL {
		log.Infof("using cached manifest for %s", rawURL)
		return []byte(cached.Body), nil
	}

	body, err := download(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if err := cacher.Set(&cachedManifest{URL: rawURL, Body: string(body)}); err != nil {
		log.Warnf("cache manifest %s: %v", rawURL, err)
	}

	return body, nil
}

func download(ctx context.Context, rawURL string) ([]byte, error) {
	log.Infof("fetching manifest %s", rawURL)

	body, err := network.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	return body, nil
}
