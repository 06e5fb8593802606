package echoapi

import (
	"github.com/openschool/backend/core/attendance"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	SubmitRequest struct {
		AssignmentID string `json:"assignment_id" validate:"required"`
		Content      string `json:"content"`
		FileName     string `json:"file_name"`
	}

	GradeRequest struct {
		Points   float64 `json:"points"`
		Feedback string  `json:"feedback"`
	}

	MarkAttendanceRequest struct {
		Date  string            `json:"date" validate:"required,isodate"`
		Marks []attendance.Mark `json:"marks" validate:"required,min=1,dive"`
	}
)
