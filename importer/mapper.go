// Package importer maps external spreadsheet exports onto the canonical
// entity shapes.
//
// Generated ids are deterministic per run (<entity-initial>-imported-<row>),
// so re-running the importer on an unchanged file regenerates the same ids and
// re-import stays idempotent. Two concurrent imports of different files can
// collide on ids when row indices coincide; single-file-at-a-time imports are
// the supported mode.
package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/openschool/backend/core"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// headerMappings maps normalized external header names to canonical field
// names, per entity. Unmapped columns are silently dropped.
var headerMappings = map[string]map[string]string{
	core.EntityUsers: {
		"id":          "id",
		"username":    "username",
		"user_name":   "username",
		"login":       "username",
		"display_name": "display_name",
		"name":        "display_name",
		"full_name":   "display_name",
		"first_name":  "first_name",
		"last_name":   "last_name",
		"surname":     "last_name",
		"email":       "email",
		"e_mail":      "email",
		"email_address": "email",
		"role":        "role",
		"user_type":   "role",
		"year_level":  "year_level",
		"year":        "year_level",
		"grade_level": "year_level",
	},
	core.EntityClasses: {
		"id":         "id",
		"name":       "name",
		"class_name": "name",
		"subject":    "subject",
		"teacher":    "teacher_id",
		"teacher_id": "teacher_id",
		"year_level": "year_level",
		"year":       "year_level",
		"period":     "period",
		"room":       "room",
		"color":      "color",
	},
	core.EntityEnrollments: {
		"id":         "id",
		"student":    "student_id",
		"student_id": "student_id",
		"class":      "class_id",
		"class_id":   "class_id",
		"status":     "status",
		"enrolled_at": "enrolled_at",
	},
	core.EntityAssignments: {
		"id":          "id",
		"class":       "class_id",
		"class_id":    "class_id",
		"title":       "title",
		"name":        "title",
		"description": "description",
		"due":         "due_date",
		"due_date":    "due_date",
		"max_points":  "max_points",
		"points":      "max_points",
		"total_points": "max_points",
		"weight":      "weight",
		"status":      "status",
		"created_by":  "created_by",
	},
	core.EntitySubmissions: {
		"id":            "id",
		"assignment":    "assignment_id",
		"assignment_id": "assignment_id",
		"student":       "student_id",
		"student_id":    "student_id",
		"submitted_at":  "submitted_at",
		"content":       "content",
		"file_name":     "file_name",
		"grade":         "grade",
		"feedback":      "feedback",
		"status":        "status",
	},
	core.EntityAttendance: {
		"id":          "id",
		"class":       "class_id",
		"class_id":    "class_id",
		"student":     "student_id",
		"student_id":  "student_id",
		"date":        "date",
		"status":      "status",
		"recorded_by": "recorded_by",
		"marked_by":   "recorded_by",
		"note":        "note",
	},
	core.EntityGrades: {
		"id":            "id",
		"student":       "student_id",
		"student_id":    "student_id",
		"class":         "class_id",
		"class_id":      "class_id",
		"assignment":    "assignment_id",
		"assignment_id": "assignment_id",
		"points":        "points",
		"score":         "points",
		"max_points":    "max_points",
		"weight":        "weight",
		"letter":        "letter_grade",
		"letter_grade":  "letter_grade",
		"graded_by":     "graded_by",
		"graded_at":     "graded_at",
		"comments":      "comments",
		"feedback":      "comments",
	},
	core.EntityTimetable: {
		"id":         "id",
		"class":      "class_id",
		"class_id":   "class_id",
		"day":        "day",
		"start":      "start_time",
		"start_time": "start_time",
		"end":        "end_time",
		"end_time":   "end_time",
		"room":       "room",
		"teacher":    "teacher_id",
		"teacher_id": "teacher_id",
		"color":      "color",
	},
	core.EntityAnnouncements: {
		"id":         "id",
		"title":      "title",
		"content":    "content",
		"body":       "content",
		"author":     "author_id",
		"author_id":  "author_id",
		"priority":   "priority",
		"published":  "published",
		"expires_at": "expires_at",
		"visible_to": "visible_to",
	},
}

// numericFields are coerced via a numeric parse with a zero fallback on
// failure. Malformed numeric input becomes 0, never an error: lossy on
// purpose, for parity with the data the app has always accepted.
var numericFields = map[string]struct{}{
	"max_points": {},
	"points":     {},
	"weight":     {},
	"year_level": {},
	"grade":      {},
}

// Result is one mapping run's output.
type Result struct {
	Records []core.Record
	// Coerced counts malformed numeric cells that fell back to 0.
	Coerced int
}

// NormalizeHeader lowercases a header cell and collapses internal whitespace
// to underscores.
func NormalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	return whitespaceRun.ReplaceAllString(cell, "_")
}

// MapRows maps parsed rows onto entity's canonical shape. The entity name is
// checked before anything else so an unknown entity can never produce output.
func MapRows(entity string, header []string, rows [][]string) (Result, error) {
	mapping, ok := headerMappings[entity]
	if !ok {
		return Result{}, &core.UnknownEntityError{Name: entity}
	}

	// resolve each column once
	fields := make([]string, len(header))
	for i, cell := range header {
		fields[i] = mapping[NormalizeHeader(cell)] // "" drops the column
	}

	res := Result{Records: make([]core.Record, 0, len(rows))}
	for rowIdx, row := range rows {
		rec := make(core.Record, len(fields))
		for i, field := range fields {
			if field == "" || i >= len(row) {
				continue
			}
			if _, numeric := numericFields[field]; numeric {
				val, coerced := parseNumeric(row[i])
				if coerced {
					res.Coerced++
				}
				rec[field] = val
				continue
			}
			rec[field] = row[i]
		}

		synthesizeDisplayName(rec)

		if id, _ := rec["id"].(string); id == "" {
			rec["id"] = fmt.Sprintf("%s-imported-%d", entity[:1], rowIdx+1)
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// synthesizeDisplayName builds display_name from a first_name/last_name pair
// when no explicit display_name column was mapped. The parts are dropped
// afterwards; they are not canonical fields.
func synthesizeDisplayName(rec core.Record) {
	first, hasFirst := rec["first_name"].(string)
	last, hasLast := rec["last_name"].(string)
	if !hasFirst && !hasLast {
		return
	}
	if _, ok := rec["display_name"]; !ok {
		rec["display_name"] = strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	}
	delete(rec, "first_name")
	delete(rec, "last_name")
}

func parseNumeric(cell string) (val float64, coerced bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false // empty is a plain missing value, not a coercion
	}
	val, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, true
	}
	return val, false
}
