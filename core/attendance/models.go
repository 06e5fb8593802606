package attendance

// Status values for one attendance record.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	default:
		return false
	}
}

// Record is one attendance entry. At most one record exists per
// (class_id, student_id, date) natural key; marking again overwrites it.
type Record struct {
	ID         string `json:"id"`
	ClassID    string `json:"class_id"`
	StudentID  string `json:"student_id"`
	Date       string `json:"date" validate:"isodate"` // calendar date, no time
	Status     string `json:"status" validate:"oneof=present absent late excused"`
	RecordedBy string `json:"recorded_by"`
	Note       string `json:"note,omitempty"`
}

// Summary tallies statuses for a class across all dates. Pure counts, no
// weighting, no time decay.
type Summary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
}

// Mark is one student's entry in a batch marking action.
type Mark struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"oneof=present absent late excused"`
	Note      string `json:"note"`
}
