package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschool/backend/core"
)

type testLogger struct {
	warnings []string
}

func (l *testLogger) Debug(msg string, args ...interface{}) {}
func (l *testLogger) Info(msg string, args ...interface{})  {}
func (l *testLogger) Warn(msg string, args ...interface{})  { l.warnings = append(l.warnings, msg) }
func (l *testLogger) Error(msg string, args ...interface{}) {}
func (l *testLogger) Fatal(msg string, args ...interface{}) {}

func setup(t *testing.T) (*Store, *testLogger, string, string) {
	t.Helper()
	dataDir := t.TempDir()
	overlayDir := t.TempDir()
	logger := new(testLogger)
	store := NewStore(&core.Config{DataDir: dataDir, OverlayDir: overlayDir}, logger)
	return store, logger, dataDir, overlayDir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func Test_Load_baselineFallback(t *testing.T) {
	store, _, dataDir, _ := setup(t)
	writeFile(t, dataDir, "users.json", `[{"id": "u-1"}]`)

	var records []core.Record
	require.NoError(t, store.Load(context.Background(), "users", &records))
	require.Len(t, records, 1)
	assert.Equal(t, "u-1", records[0]["id"])
}

func Test_Load_overlayWinsOverBaseline(t *testing.T) {
	store, _, dataDir, overlayDir := setup(t)
	writeFile(t, dataDir, "users.json", `[{"id": "u-baseline"}]`)
	writeFile(t, overlayDir, "users.json", `[{"id": "u-overlay"}]`)

	var records []core.Record
	require.NoError(t, store.Load(context.Background(), "users", &records))
	require.Len(t, records, 1)
	assert.Equal(t, "u-overlay", records[0]["id"])
}

func Test_Load_missingDatasetIsEmpty(t *testing.T) {
	store, logger, _, _ := setup(t)

	records := []core.Record{{"id": "stale"}}
	require.NoError(t, store.Load(context.Background(), "users", &records))
	assert.Empty(t, records)
	assert.Empty(t, logger.warnings)
}

func Test_Load_malformedDatasetIsEmptyWithWarning(t *testing.T) {
	store, logger, dataDir, _ := setup(t)
	writeFile(t, dataDir, "users.json", `{not json`)

	var records []core.Record
	require.NoError(t, store.Load(context.Background(), "users", &records))
	assert.Empty(t, records)
	assert.Len(t, logger.warnings, 1)
}

func Test_Load_unknownEntity(t *testing.T) {
	store, _, _, _ := setup(t)

	var records []core.Record
	err := store.Load(context.Background(), "staff", &records)
	require.Error(t, err)
	assert.IsType(t, &core.UnknownEntityError{}, err)
}

func Test_Save_writesOverlayOnly(t *testing.T) {
	store, _, dataDir, overlayDir := setup(t)
	writeFile(t, dataDir, "users.json", `[{"id": "u-baseline"}]`)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "users", []core.Record{{"id": "u-new"}}))

	// baseline untouched
	raw, err := os.ReadFile(filepath.Join(dataDir, "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "u-baseline")

	// overlay has the replacement set and wins on the next read
	_, err = os.Stat(filepath.Join(overlayDir, "users.json"))
	require.NoError(t, err)

	var records []core.Record
	require.NoError(t, store.Load(ctx, "users", &records))
	require.Len(t, records, 1)
	assert.Equal(t, "u-new", records[0]["id"])
}

func Test_Save_roundTripTypes(t *testing.T) {
	store, _, _, _ := setup(t)
	ctx := context.Background()

	in := []core.Record{{"id": "a-1", "published": true, "weight": 0.5, "title": "Exam week"}}
	require.NoError(t, store.Save(ctx, "announcements", in))

	var out []core.Record
	require.NoError(t, store.Load(ctx, "announcements", &out))
	assert.Equal(t, in, out)
}
