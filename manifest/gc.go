package manifest

import (
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/vidswitch/vidswitch/filesystem"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/where"
)

// CollectGarbage removes cached manifests older than the configured lifetime.
// Entries are otherwise only replaced when the same URL is fetched again.
func CollectGarbage() {
	ttl := cacheTTL()
	if ttl <= 0 {
		return
	}

	removed := prune(where.Manifests(), ttl, time.Now())
	if removed > 0 {
		log.Infof("removed %d expired manifests", removed)
	}
}

func prune(dir string, ttl time.Duration, now time.Time) (removed int) {
	fs := filesystem.API()

	_ = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if now.Sub(info.ModTime()) > ttl {
			if err := fs.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})

	return removed
}
