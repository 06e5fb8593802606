package school

// Pure relationship resolution over in-memory arrays. All joins are linear
// scans; the dataset is bounded to a single small school, so nothing here
// builds an index. Dangling foreign keys are tolerated: every function returns
// the raw IDs present in the enrollment table and leaves display-time fallback
// to the caller.

// Roster returns the ordered student IDs actively enrolled in classID.
// Order follows the enrollment table order.
func Roster(enrollments []Enrollment, classID string) []string {
	students := make([]string, 0)
	for _, enr := range enrollments {
		if enr.ClassID == classID && enr.Status == EnrollmentActive {
			students = append(students, enr.StudentID)
		}
	}
	return students
}

// ActiveClassIDs returns the IDs of the classes studentID is actively enrolled in.
func ActiveClassIDs(enrollments []Enrollment, studentID string) []string {
	classes := make([]string, 0)
	for _, enr := range enrollments {
		if enr.StudentID == studentID && enr.Status == EnrollmentActive {
			classes = append(classes, enr.ClassID)
		}
	}
	return classes
}

// SlotsFor returns the timetable slots of classID, in table order.
func SlotsFor(slots []TimetableSlot, classID string) []TimetableSlot {
	out := make([]TimetableSlot, 0)
	for _, slot := range slots {
		if slot.ClassID == classID {
			out = append(out, slot)
		}
	}
	return out
}
