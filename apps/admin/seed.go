package main

import (
	"context"
	"fmt"
	"time"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/announce"
	"github.com/openschool/backend/core/school"
	"github.com/openschool/backend/core/user"
)

const seedPassword = "changeme"

// seed loads a small demo dataset. Tables that already hold records are left
// untouched.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	now := time.Now().UTC()

	demoUsers := []user.User{
		{ID: "u-1", Username: "principal", DisplayName: "Dana Whitfield", Role: user.RoleAdmin, Email: "principal@openschool.test", IsActive: true, CreatedAt: now},
		{ID: "u-2", Username: "mgreen", DisplayName: "Marcus Green", Role: user.RoleTeacher, Email: "mgreen@openschool.test", IsActive: true, CreatedAt: now},
		{ID: "u-3", Username: "asilva", DisplayName: "Ana Silva", Role: user.RoleStudent, IsActive: true, CreatedAt: now},
		{ID: "u-4", Username: "tokoro", DisplayName: "Tayo Okoro", Role: user.RoleStudent, IsActive: true, CreatedAt: now},
	}
	for i := range demoUsers {
		if err := demoUsers[i].SetPassword(seedPassword); err != nil {
			return err
		}
	}
	if err := cli.seedEntity(ctx, core.EntityUsers, demoUsers); err != nil {
		return err
	}

	classes := []school.ClassSection{
		{ID: "c-1", Name: "Mathematics 9A", Subject: "Mathematics", TeacherID: "u-2", YearLevel: 9, Period: "1", Room: "201", Color: "#4e79a7", IsActive: true},
		{ID: "c-2", Name: "Science 9A", Subject: "Science", TeacherID: "u-2", YearLevel: 9, Period: "2", Room: "104", Color: "#59a14f", IsActive: true},
	}
	if err := cli.seedEntity(ctx, core.EntityClasses, classes); err != nil {
		return err
	}

	enrollments := []school.Enrollment{
		{ID: "e-1", StudentID: "u-3", ClassID: "c-1", EnrolledAt: now, Status: school.EnrollmentActive},
		{ID: "e-2", StudentID: "u-4", ClassID: "c-1", EnrolledAt: now, Status: school.EnrollmentActive},
		{ID: "e-3", StudentID: "u-3", ClassID: "c-2", EnrolledAt: now, Status: school.EnrollmentActive},
	}
	if err := cli.seedEntity(ctx, core.EntityEnrollments, enrollments); err != nil {
		return err
	}

	slots := []school.TimetableSlot{
		{ID: "t-1", ClassID: "c-1", Day: "monday", StartTime: "08:30", EndTime: "09:20", Room: "201", TeacherID: "u-2", Color: "#4e79a7"},
		{ID: "t-2", ClassID: "c-2", Day: "tuesday", StartTime: "09:30", EndTime: "10:20", Room: "104", TeacherID: "u-2", Color: "#59a14f"},
	}
	if err := cli.seedEntity(ctx, core.EntityTimetable, slots); err != nil {
		return err
	}

	anns := []announce.Announcement{
		{ID: "a-1", Title: "Welcome back", Content: "Term starts Monday.", AuthorID: "u-1", Published: true, CreatedAt: now, Priority: announce.PriorityNormal},
	}
	return cli.seedEntity(ctx, core.EntityAnnouncements, anns)
}

func (cli *commandLine) seedEntity(ctx context.Context, entity string, records interface{}) error {
	var existing []core.Record
	if err := cli.store.Load(ctx, entity, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("%s: not empty, skipped\n", entity)
		return nil
	}
	if err := cli.store.Save(ctx, entity, records); err != nil {
		return err
	}
	fmt.Printf("%s: seeded\n", entity)
	return nil
}
