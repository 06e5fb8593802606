package school

import (
	"context"
	"errors"

	"github.com/openschool/backend/core"
)

var ErrClassNotFound = errors.New("class not found")

// Service resolves class/enrollment/timetable relationships. Every call
// re-reads the record store; nothing is cached across calls.
type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Classes(ctx context.Context) ([]ClassSection, error) {
	var classes []ClassSection
	if err := svc.store.Load(ctx, core.EntityClasses, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (svc *Service) GetClass(ctx context.Context, id string) (ClassSection, error) {
	classes, err := svc.Classes(ctx)
	if err != nil {
		return ClassSection{}, err
	}
	for _, cls := range classes {
		if cls.ID == id {
			return cls, nil
		}
	}
	return ClassSection{}, ErrClassNotFound
}

func (svc *Service) Enrollments(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := svc.store.Load(ctx, core.EntityEnrollments, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ClassRoster returns the ordered student IDs actively enrolled in classID.
// A dangling class ID yields an empty roster, not an error.
func (svc *Service) ClassRoster(ctx context.Context, classID string) ([]string, error) {
	enrollments, err := svc.Enrollments(ctx)
	if err != nil {
		return nil, err
	}
	return Roster(enrollments, classID), nil
}

// ClassesForStudent returns the IDs of the classes studentID is actively enrolled in.
func (svc *Service) ClassesForStudent(ctx context.Context, studentID string) ([]string, error) {
	enrollments, err := svc.Enrollments(ctx)
	if err != nil {
		return nil, err
	}
	return ActiveClassIDs(enrollments, studentID), nil
}

func (svc *Service) Timetable(ctx context.Context, classID string) ([]TimetableSlot, error) {
	var slots []TimetableSlot
	if err := svc.store.Load(ctx, core.EntityTimetable, &slots); err != nil {
		return nil, err
	}
	return SlotsFor(slots, classID), nil
}
