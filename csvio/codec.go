// Package csvio parses and serializes entity arrays as RFC-4180 delimited
// text: comma-separated fields, double-quoted fields may contain commas,
// newlines or doubled quotes, CRLF and LF both terminate rows, and the first
// row is always a header.
package csvio

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads header and data rows. Blank rows (all fields empty after trim)
// are dropped. An input without a header row yields an empty header and no
// rows.
func Parse(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are the import mapper's problem

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading csv")
	}

	kept := make([][]string, 0, len(all))
	for _, row := range all {
		if isBlank(row) {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == 0 {
		return nil, nil, nil
	}
	return kept[0], kept[1:], nil
}

// ParseRecords reads the input into header-keyed maps. Rows shorter than the
// header leave the missing fields absent; extra cells are dropped.
func ParseRecords(r io.Reader) (header []string, records []map[string]string, err error) {
	header, rows, err := Parse(r)
	if err != nil {
		return nil, nil, err
	}
	records = make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// Serialize writes a header row then one row per record, in columns order.
// When columns is nil the sorted key set of the first record is used. Missing
// fields serialize as the empty string; quoting and quote doubling follow
// encoding/csv (RFC 4180).
func Serialize(w io.Writer, records []map[string]string, columns []string) error {
	if columns == nil && len(records) > 0 {
		columns = make([]string, 0, len(records[0]))
		for col := range records[0] {
			columns = append(columns, col)
		}
		sort.Strings(columns)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, "writing header")
	}
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// SerializeRecords serializes schemaless store records, stringifying values.
func SerializeRecords(w io.Writer, records []map[string]interface{}, columns []string) error {
	converted := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		out := make(map[string]string, len(rec))
		for k, v := range rec {
			out[k] = formatValue(v)
		}
		converted = append(converted, out)
	}
	return Serialize(w, converted, columns)
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
