package importer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/csvio"
)

// Run imports inputPath (.csv, or .xlsx via the first sheet) as entity and
// writes the mapped JSON array to outputPath. The entity name is validated
// before any read or write. Returns the mapping result for reporting.
func Run(inputPath, entity, outputPath string) (Result, error) {
	if !core.ValidEntity(entity) {
		return Result{}, &core.UnknownEntityError{Name: entity}
	}

	header, rows, err := readRows(inputPath)
	if err != nil {
		return Result{}, err
	}

	res, err := MapRows(entity, header, rows)
	if err != nil {
		return Result{}, err
	}

	out, err := json.MarshalIndent(res.Records, "", "  ")
	if err != nil {
		return Result{}, errors.Wrap(err, "encoding records")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Result{}, errors.Wrap(err, "creating output dir")
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return Result{}, errors.Wrap(err, "writing output")
	}
	return res, nil
}

// DefaultOutputPath is the per-entity conventional location under dataDir.
func DefaultOutputPath(dataDir, entity string) string {
	return filepath.Join(dataDir, entity+".json")
}

func readRows(path string) (header []string, rows [][]string, err error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading input")
	}
	return csvio.Parse(bytes.NewReader(raw))
}
