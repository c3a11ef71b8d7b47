package uploads

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afigueiredo/werkstatt/internal/models"
	"github.com/afigueiredo/werkstatt/internal/repository"
)

func writeFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestCleanOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := repository.NewMemStorage()

	_, err := store.CreateService(ctx, models.InsertService{
		ClientID:       1,
		VehicleName:    "BMW 320d",
		Date:           time.Now(),
		TechnicianID:   1,
		TechnicianName: "tech",
		ServiceType:    models.Hail,
		ServiceValue:   10000,
		Status:         models.ServicePending,
		Images:         []string{"/api/uploads/kept.jpg"},
	})
	require.NoError(t, err)

	kept := writeFile(t, dir, "kept.jpg", 48*time.Hour)
	orphan := writeFile(t, dir, "orphan.jpg", 48*time.Hour)
	fresh := writeFile(t, dir, "fresh.jpg", time.Minute)

	removed, err := CleanOnce(ctx, store, dir, 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	// Referenced and young files survive, the old orphan is gone.
	require.FileExists(t, kept)
	require.FileExists(t, fresh)
	require.NoFileExists(t, orphan)
}

func TestCleanOnce_MissingDir(t *testing.T) {
	store := repository.NewMemStorage()
	removed, err := CleanOnce(context.Background(), store, filepath.Join(t.TempDir(), "nope"), time.Hour)
	require.NoError(t, err)
	require.Zero(t, removed)
}
