package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/announce"
	"github.com/openschool/backend/core/attendance"
	"github.com/openschool/backend/core/gradebook"
	"github.com/openschool/backend/core/school"
	"github.com/openschool/backend/core/user"
)

type schoolApi struct {
	userSvc       *user.Service
	schoolSvc     *school.Service
	gradebookSvc  *gradebook.Service
	attendanceSvc *attendance.Service
	announceSvc   *announce.Service
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := schoolApi{
		userSvc:       deps.UserSvc,
		schoolSvc:     deps.SchoolSvc,
		gradebookSvc:  deps.GradebookSvc,
		attendanceSvc: deps.AttendanceSvc,
		announceSvc:   deps.AnnounceSvc,
	}

	cg := g.Group("/classes", jwt)
	cg.GET("", api.listClasses)
	cg.GET("/:id", api.retrieveClass)
	cg.GET("/:id/roster", api.roster)
	cg.GET("/:id/timetable", api.timetable)
	cg.GET("/:id/assignments", api.assignments)
	cg.GET("/:id/gradebook", api.gradebookSummary, staffMiddleware())
	cg.GET("/:id/attendance", api.attendanceSheet, staffMiddleware())
	cg.GET("/:id/attendance/summary", api.attendanceSummary, staffMiddleware())
	cg.POST("/:id/attendance", api.markAttendance, staffMiddleware())

	sg := g.Group("/submissions", jwt)
	sg.POST("", api.submit)
	sg.POST("/:id/grade", api.grade, staffMiddleware())

	ng := g.Group("/announcements", jwt)
	ng.GET("", api.announcements)
	ng.POST("/:id/publish", api.publish, adminMiddleware())
}

// rosterEntry pairs a student id with its resolved display name.
type rosterEntry struct {
	StudentID   string `json:"student_id"`
	DisplayName string `json:"display_name"`
}

// Handlers

func (api *schoolApi) listClasses(ctx echo.Context) error {
	classes, err := api.schoolSvc.Classes(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []school.ClassSection{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *schoolApi) retrieveClass(ctx echo.Context) error {
	class, err := api.schoolSvc.GetClass(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == school.ErrClassNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding class")
	}
	return ctx.JSON(http.StatusOK, class)
}

func (api *schoolApi) roster(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	studentIDs, err := api.schoolSvc.ClassRoster(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying roster")
	}

	users, err := api.userSvc.All(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	roster := make([]rosterEntry, 0, len(studentIDs))
	for _, id := range studentIDs {
		roster = append(roster, rosterEntry{
			StudentID:   id,
			DisplayName: user.DisplayNameOf(users, id),
		})
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *schoolApi) timetable(ctx echo.Context) error {
	slots, err := api.schoolSvc.Timetable(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}
	if slots == nil {
		slots = []school.TimetableSlot{}
	}
	return ctx.JSON(http.StatusOK, slots)
}

func (api *schoolApi) assignments(ctx echo.Context) error {
	assignments, err := api.gradebookSvc.Assignments(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []gradebook.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *schoolApi) gradebookSummary(ctx echo.Context) error {
	summaries, err := api.gradebookSvc.ClassSummary(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "summarizing gradebook")
	}
	if summaries == nil {
		summaries = []gradebook.StudentSummary{}
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (api *schoolApi) attendanceSheet(ctx echo.Context) error {
	date := ctx.QueryParam("date")
	if date == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "this field is required"})
	}

	sheet, err := api.attendanceSvc.Sheet(ctx.Request().Context(), ctx.Param("id"), date)
	if err != nil {
		return errors.Wrap(err, "querying attendance sheet")
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *schoolApi) attendanceSummary(ctx echo.Context) error {
	summary, err := api.attendanceSvc.Summarize(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "summarizing attendance")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *schoolApi) markAttendance(ctx echo.Context) error {
	var data MarkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendanceRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	records, err := api.attendanceSvc.MarkClass(ctx.Request().Context(), ctx.Param("id"), data.Date, data.Marks, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *schoolApi) submit(ctx echo.Context) error {
	var data SubmitRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sub, err := api.gradebookSvc.Submit(ctx.Request().Context(), data.AssignmentID, claims.Subject, data.Content, data.FileName)
	if err != nil {
		if errors.Cause(err) == gradebook.ErrAssignmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "submitting")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *schoolApi) grade(ctx echo.Context) error {
	var data GradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeRequest")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sub, rec, err := api.gradebookSvc.Grade(ctx.Request().Context(), ctx.Param("id"), data.Points, data.Feedback, claims.Subject)
	if err != nil {
		if errors.Cause(err) == gradebook.ErrSubmissionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "grading")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"submission": sub, "grade": rec})
}

func (api *schoolApi) announcements(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	anns, err := api.announceSvc.VisibleTo(ctx.Request().Context(), claims.Role)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	if anns == nil {
		anns = []announce.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *schoolApi) publish(ctx echo.Context) error {
	ann, err := api.announceSvc.Publish(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == announce.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "publishing announcement")
	}
	return ctx.JSON(http.StatusOK, ann)
}
