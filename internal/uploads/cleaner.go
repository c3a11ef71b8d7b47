package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/afigueiredo/werkstatt/internal/repository"
)

// StartCleaner removes orphaned uploads with interval. A file is an
// orphan when it is older than retention and no service's images list
// references it.
func StartCleaner(
	ctx context.Context,
	store repository.Storage,
	dir string,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := CleanOnce(ctx, store, dir, retention)
				if err != nil {
					log.Error("failed to clean orphaned uploads", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("cleaned orphaned uploads", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// CleanOnce performs a single cleanup pass and reports how many files
// were removed.
func CleanOnce(ctx context.Context, store repository.Storage, dir string, retention time.Duration) (int, error) {
	services, err := store.GetServices(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{})
	for _, svc := range services {
		for _, img := range svc.Images {
			// Images are stored as serving paths; only the file
			// name identifies them on disk.
			referenced[filepath.Base(strings.TrimSpace(img))] = struct{}{}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
