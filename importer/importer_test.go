package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschool/backend/core"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(input, []byte("Full Name,E Mail,User Type\nAna Silva,ana@test.cd,student\n"), 0o644))

	output := DefaultOutputPath(filepath.Join(dir, "data"), core.EntityUsers)
	res, err := Run(input, core.EntityUsers, output)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	var records []core.Record
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Ana Silva", records[0]["display_name"])
	assert.Equal(t, "u-imported-1", records[0]["id"])
}

func TestRun_unknownEntity(t *testing.T) {
	_, err := Run("whatever.csv", "staff", "out.json")
	require.Error(t, err)
	assert.IsType(t, &core.UnknownEntityError{}, err)
}

func TestRun_missingInput(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "nope.csv"), core.EntityUsers, "out.json")
	assert.Error(t, err)
}
