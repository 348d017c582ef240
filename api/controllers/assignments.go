package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/roster-backend/api/responses"
	"github.com/angelmondragon/roster-backend/api/validators"
	"github.com/angelmondragon/roster-backend/internal/assignments"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/logger"
)

type assignmentCreateRequest struct {
	ShiftID string `json:"shiftId" validate:"required,uuid"`
	UserID  string `json:"userId" validate:"required,uuid"`
	Status  string `json:"status" validate:"omitempty,oneof=ASSIGNED UNAVAILABLE COMPLETED"`
}

type assignmentWithdrawRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type shiftPickupRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

func AssignmentCreate(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload assignmentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shiftID, err := validators.ParsePathUUID(payload.ShiftID, "shiftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.ParsePathUUID(payload.UserID, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Assign(r.Context(), assignments.AssignInput{
			ShiftID: shiftID,
			UserID:  userID,
			Status:  enums.AssignmentStatus(strings.TrimSpace(payload.Status)),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ShiftPickup(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := validators.ParsePathUUID(chi.URLParam(r, "shiftId"), "shiftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload shiftPickupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.ParsePathUUID(payload.UserID, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.PickUp(r.Context(), shiftID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AssignmentList(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := assignmentFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindAll(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func AssignmentFetch(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assignmentId"), "assignmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.FindOne(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

func AssignmentWithdraw(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assignmentId"), "assignmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignmentWithdrawRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Withdraw(r.Context(), assignments.WithdrawInput{
			AssignmentID: id,
			Reason:       payload.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AssignmentDelete(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assignmentId"), "assignmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func UserAssignmentList(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		startDate, err := validators.ParseQueryDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		endDate, err := validators.ParseQueryDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindForUser(r.Context(), userID, startDate, endDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func UserAssignmentDay(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := validators.ParsePathDate(chi.URLParam(r, "date"), "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindForUserDay(r.Context(), userID, date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func UserAssignmentWeek(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		startDate, err := validators.ParsePathDate(chi.URLParam(r, "startDate"), "startDate")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindForUserWeek(r.Context(), userID, startDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func assignmentFilterFromQuery(r *http.Request) (assignments.Filter, error) {
	var filter assignments.Filter

	userID, err := validators.ParseQueryUUID(r, "user_id")
	if err != nil {
		return filter, err
	}
	filter.UserID = userID

	shiftID, err := validators.ParseQueryUUID(r, "shift_id")
	if err != nil {
		return filter, err
	}
	filter.ShiftID = shiftID

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, parseErr := enums.ParseAssignmentStatus(raw)
		if parseErr != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignment status").WithDetails(map[string]any{"field": "status"})
		}
		filter.Status = &status
	}

	date, err := validators.ParseQueryDate(r, "date")
	if err != nil {
		return filter, err
	}
	filter.Date = date

	startDate, err := validators.ParseQueryDate(r, "start_date")
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate

	endDate, err := validators.ParseQueryDate(r, "end_date")
	if err != nil {
		return filter, err
	}
	filter.EndDate = endDate

	return filter, nil
}
