package attendance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/school"
)

// Service aggregates and mutates attendance records. Mutations are batch
// upserts by the (class, student, date) natural key.
type Service struct {
	store  core.Store
	school *school.Service
}

func NewService(store core.Store, schoolSvc *school.Service) *Service {
	return &Service{store: store, school: schoolSvc}
}

func (svc *Service) records(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := svc.store.Load(ctx, core.EntityAttendance, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Sheet returns the current status per student for (classID, date). Upsert
// semantics guarantee at most one record per student; the scan still keeps the
// most recently written one should historical data contain duplicates.
func (svc *Service) Sheet(ctx context.Context, classID, date string) (map[string]Record, error) {
	records, err := svc.records(ctx)
	if err != nil {
		return nil, err
	}
	sheet := make(map[string]Record)
	for _, rec := range records {
		if rec.ClassID == classID && rec.Date == date {
			sheet[rec.StudentID] = rec
		}
	}
	return sheet, nil
}

// Summarize tallies the four statuses for classID across all dates.
func (svc *Service) Summarize(ctx context.Context, classID string) (Summary, error) {
	records, err := svc.records(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Tally(records, classID), nil
}

// Tally is the pure aggregation behind Summarize.
func Tally(records []Record, classID string) Summary {
	var sum Summary
	for _, rec := range records {
		if rec.ClassID != classID {
			continue
		}
		switch rec.Status {
		case StatusPresent:
			sum.Present++
		case StatusAbsent:
			sum.Absent++
		case StatusLate:
			sum.Late++
		case StatusExcused:
			sum.Excused++
		}
	}
	return sum
}

// MarkClass upserts one record per mark for (classID, date): an existing
// record for the (class, student, date) key is overwritten preserving its
// original id, otherwise a new record is appended. Students absent from marks
// are left untouched; there is no implicit absence marking.
func (svc *Service) MarkClass(ctx context.Context, classID, date string, marks []Mark, recordedBy string) ([]Record, error) {
	for _, m := range marks {
		if !ValidStatus(m.Status) {
			return nil, core.NewValidationError(
				fmt.Errorf("invalid attendance status %q", m.Status),
				core.FieldError{Field: "status", Error: "must be one of present, absent, late, excused"},
			)
		}
	}

	records, err := svc.records(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(records)) // student id -> row for (class, date)
	for i, rec := range records {
		if rec.ClassID == classID && rec.Date == date {
			index[rec.StudentID] = i
		}
	}

	updated := make([]Record, 0, len(marks))
	for _, m := range marks {
		if i, ok := index[m.StudentID]; ok {
			records[i].Status = m.Status
			records[i].Note = m.Note
			records[i].RecordedBy = recordedBy
			updated = append(updated, records[i])
			continue
		}
		rec := Record{
			ID:         "at-" + uuid.New().String(),
			ClassID:    classID,
			StudentID:  m.StudentID,
			Date:       date,
			Status:     m.Status,
			RecordedBy: recordedBy,
			Note:       m.Note,
		}
		records = append(records, rec)
		index[m.StudentID] = len(records) - 1 // a repeated student in marks updates this row
		updated = append(updated, rec)
	}

	if err := svc.store.Save(ctx, core.EntityAttendance, records); err != nil {
		return nil, err
	}
	return updated, nil
}
