package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Canonical entity names. Each names one JSON array in the record store.
const (
	EntityUsers         = "users"
	EntityClasses       = "classes"
	EntityEnrollments   = "enrollments"
	EntityAssignments   = "assignments"
	EntitySubmissions   = "submissions"
	EntityAttendance    = "attendance"
	EntityGrades        = "grades"
	EntityTimetable     = "timetable"
	EntityAnnouncements = "announcements"
)

var entities = map[string]struct{}{
	EntityUsers:         {},
	EntityClasses:       {},
	EntityEnrollments:   {},
	EntityAssignments:   {},
	EntitySubmissions:   {},
	EntityAttendance:    {},
	EntityGrades:        {},
	EntityTimetable:     {},
	EntityAnnouncements: {},
}

// Record is one schemaless entity row, as stored.
type Record = map[string]interface{}

type (
	// Store is the record store contract shared by all backends.
	//
	// There is no partial update and no cross-entity transaction: every mutation
	// path loads the full current array, mutates or appends records in memory and
	// saves the full replacement set back.
	Store interface {
		// Load decodes the current full array for entity into dst (a pointer to a
		// slice). A missing or unreadable dataset degrades to an empty slice and
		// is never an error.
		Load(ctx context.Context, entity string, dst interface{}) error

		// Save persists records as the full replacement set for entity.
		Save(ctx context.Context, entity string, records interface{}) error
	}
)

func ValidEntity(name string) bool {
	_, ok := entities[name]
	return ok
}

// EntityNames returns all recognized entity names, sorted.
func EntityNames() []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownEntityError reports an entity name the store does not recognize.
type UnknownEntityError struct {
	Name string
}

func (err *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %q; valid entities: %s", err.Name, strings.Join(EntityNames(), ", "))
}
