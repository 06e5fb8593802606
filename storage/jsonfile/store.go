// Package jsonfile is the flat-file record store: an immutable baseline
// dataset overlaid with locally written replacement files. Load prefers the
// overlay; every Save goes to the overlay, so the baseline never changes from
// the app's perspective.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/openschool/backend/core"
)

type Store struct {
	dataDir    string
	overlayDir string
	logger     core.Logger
}

var _ core.Store = (*Store)(nil)

func NewStore(conf *core.Config, logger core.Logger) *Store {
	return &Store{
		dataDir:    conf.DataDir,
		overlayDir: conf.OverlayDir,
		logger:     logger,
	}
}

// Load decodes the entity's current full array into dst, preferring a
// previously saved overlay file and falling back to the baseline dataset.
// A missing, unreadable or malformed dataset degrades to an empty slice with
// a logged warning; it is never an error.
func (s *Store) Load(ctx context.Context, entity string, dst interface{}) error {
	if !core.ValidEntity(entity) {
		return &core.UnknownEntityError{Name: entity}
	}

	for _, path := range []string{s.overlayPath(entity), s.baselinePath(entity)} {
		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			s.logger.Warn(fmt.Sprintf("jsonfile: reading %s: %v; treating dataset as empty", path, err))
			break
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			s.logger.Warn(fmt.Sprintf("jsonfile: malformed %s: %v; treating dataset as empty", path, err))
			break
		}
		return nil
	}
	return json.Unmarshal([]byte("[]"), dst)
}

// Save writes records as the entity's full replacement set to the overlay,
// atomically (temp file + rename).
func (s *Store) Save(ctx context.Context, entity string, records interface{}) error {
	if !core.ValidEntity(entity) {
		return &core.UnknownEntityError{Name: entity}
	}

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding records")
	}

	if err := os.MkdirAll(s.overlayDir, 0o755); err != nil {
		return errors.Wrap(err, "creating overlay dir")
	}
	tmp, err := os.CreateTemp(s.overlayDir, entity+"-*.json")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), s.overlayPath(entity)); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "replacing overlay")
	}
	return nil
}

func (s *Store) baselinePath(entity string) string {
	return filepath.Join(s.dataDir, entity+".json")
}

func (s *Store) overlayPath(entity string) string {
	return filepath.Join(s.overlayDir, entity+".json")
}
