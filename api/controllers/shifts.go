package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/roster-backend/api/responses"
	"github.com/angelmondragon/roster-backend/api/validators"
	"github.com/angelmondragon/roster-backend/internal/shifts"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
)

type shiftCreateRequest struct {
	Date          string `json:"date" validate:"required"`
	TimeslotID    string `json:"timeslotId" validate:"required,uuid"`
	RequiredStaff int    `json:"requiredStaff" validate:"omitempty,min=1"`
}

func (r shiftCreateRequest) toInput() (shifts.CreateShiftInput, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return shifts.CreateShiftInput{}, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	timeslotID, err := uuid.Parse(r.TimeslotID)
	if err != nil {
		return shifts.CreateShiftInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid timeslotId")
	}
	return shifts.CreateShiftInput{
		Date:          date,
		TimeslotID:    timeslotID,
		RequiredStaff: r.RequiredStaff,
	}, nil
}

type shiftUpdateRequest struct {
	Date          *string `json:"date"`
	TimeslotID    *string `json:"timeslotId" validate:"omitempty,uuid"`
	Status        *string `json:"status" validate:"omitempty,oneof=OPEN ASSIGNED CANCELLED"`
	RequiredStaff *int    `json:"requiredStaff" validate:"omitempty,min=1"`
}

type shiftRepeatRequest struct {
	TimeslotID    string   `json:"timeslotId" validate:"required,uuid"`
	Dates         []string `json:"dates" validate:"required,min=1"`
	RequiredStaff int      `json:"requiredStaff" validate:"omitempty,min=1"`
}

func ShiftCreate(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shiftCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ShiftList(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := shiftFilterFromQuery(r)
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

func ShiftListOpen(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindOpen(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func ShiftFetch(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shiftId"), "shiftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shift, err := svc.FindOne(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shift)
	}
}

func ShiftUpdate(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shiftId"), "shiftId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload shiftUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input shifts.UpdateShiftInput
		if payload.Date != nil {
			date, parseErr := types.ParseDate(*payload.Date)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD"))
				return
			}
			input.Date = &date
		}
		if payload.TimeslotID != nil {
			timeslotID, parseErr := uuid.Parse(*payload.TimeslotID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid timeslotId"))
				return
			}
			input.TimeslotID = &timeslotID
		}
		if payload.Status != nil {
			status, parseErr := enums.ParseShiftStatus(*payload.Status)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid shift status"))
				return
			}
			input.Status = &status
		}
		input.RequiredStaff = payload.RequiredStaff

		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func ShiftDelete(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shiftId"), "shiftId")
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

func ShiftRepeat(svc shifts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shiftRepeatRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		timeslotID, err := uuid.Parse(payload.TimeslotID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid timeslotId"))
			return
		}
		dates := make([]types.Date, 0, len(payload.Dates))
		for _, raw := range payload.Dates {
			date, parseErr := types.ParseDate(strings.TrimSpace(raw))
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "dates must be YYYY-MM-DD"))
				return
			}
			dates = append(dates, date)
		}

		created, err := svc.Repeat(r.Context(), shifts.RepeatShiftInput{
			TimeslotID:    timeslotID,
			Dates:         dates,
			RequiredStaff: payload.RequiredStaff,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func shiftFilterFromQuery(r *http.Request) (shifts.Filter, error) {
	var filter shifts.Filter

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

	timeslotID, err := validators.ParseQueryUUID(r, "timeslot_id")
	if err != nil {
		return filter, err
	}
	filter.TimeslotID = timeslotID

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, parseErr := enums.ParseShiftStatus(raw)
		if parseErr != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid shift status").WithDetails(map[string]any{"field": "status"})
		}
		filter.Status = &status
	}
	return filter, nil
}
