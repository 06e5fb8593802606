package school

import (
	"reflect"
	"testing"
)

func TestRoster(t *testing.T) {
	enrollments := []Enrollment{
		{ID: "e-1", StudentID: "u-3", ClassID: "c-1", Status: EnrollmentActive},
		{ID: "e-2", StudentID: "u-4", ClassID: "c-1", Status: EnrollmentWithdrawn},
		{ID: "e-3", StudentID: "u-5", ClassID: "c-1", Status: EnrollmentActive},
		{ID: "e-4", StudentID: "u-6", ClassID: "c-2", Status: EnrollmentActive},
		{ID: "e-5", StudentID: "u-7", ClassID: "c-1", Status: EnrollmentCompleted},
	}

	tests := []struct {
		name    string
		classID string
		want    []string
	}{
		{name: "active only, table order", classID: "c-1", want: []string{"u-3", "u-5"}},
		{name: "other class", classID: "c-2", want: []string{"u-6"}},
		{name: "unknown class", classID: "c-404", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Roster(enrollments, tt.classID); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Roster() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActiveClassIDs(t *testing.T) {
	enrollments := []Enrollment{
		{ID: "e-1", StudentID: "u-3", ClassID: "c-1", Status: EnrollmentActive},
		{ID: "e-2", StudentID: "u-3", ClassID: "c-2", Status: EnrollmentWithdrawn},
		{ID: "e-3", StudentID: "u-3", ClassID: "c-3", Status: EnrollmentActive},
		{ID: "e-4", StudentID: "u-4", ClassID: "c-1", Status: EnrollmentActive},
	}

	if got, want := ActiveClassIDs(enrollments, "u-3"), []string{"c-1", "c-3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveClassIDs() = %v, want %v", got, want)
	}
	if got := ActiveClassIDs(enrollments, "u-404"); len(got) != 0 {
		t.Errorf("ActiveClassIDs() = %v, want empty", got)
	}
}

func TestSlotsFor(t *testing.T) {
	slots := []TimetableSlot{
		{ID: "t-1", ClassID: "c-1", Day: "monday", StartTime: "08:30", EndTime: "09:20"},
		{ID: "t-2", ClassID: "c-2", Day: "monday", StartTime: "09:30", EndTime: "10:20"},
		{ID: "t-3", ClassID: "c-1", Day: "thursday", StartTime: "08:30", EndTime: "09:20"},
	}

	got := SlotsFor(slots, "c-1")
	if len(got) != 2 || got[0].ID != "t-1" || got[1].ID != "t-3" {
		t.Errorf("SlotsFor() = %v", got)
	}
	if got := SlotsFor(slots, "c-404"); len(got) != 0 {
		t.Errorf("SlotsFor() = %v, want empty", got)
	}
}
