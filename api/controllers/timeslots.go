package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/roster-backend/api/responses"
	"github.com/angelmondragon/roster-backend/api/validators"
	"github.com/angelmondragon/roster-backend/internal/timeslots"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	"github.com/angelmondragon/roster-backend/pkg/types"
)

type timeslotCreateRequest struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

func (r timeslotCreateRequest) toInput() (timeslots.CreateTimeslotInput, error) {
	start, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return timeslots.CreateTimeslotInput{}, pkgerrors.New(pkgerrors.CodeValidation, "startTime must be HH:MM")
	}
	end, err := types.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return timeslots.CreateTimeslotInput{}, pkgerrors.New(pkgerrors.CodeValidation, "endTime must be HH:MM")
	}
	return timeslots.CreateTimeslotInput{
		Name:      r.Name,
		StartTime: start,
		EndTime:   end,
	}, nil
}

func TimeslotCreate(svc timeslots.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload timeslotCreateRequest
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

func TimeslotList(svc timeslots.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := svc.FindAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func TimeslotFetch(svc timeslots.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "timeslotId"), "timeslotId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		timeslot, err := svc.FindOne(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, timeslot)
	}
}
