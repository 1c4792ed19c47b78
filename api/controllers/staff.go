package controllers

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/api/validators"
	"github.com/isaacstephens/gymman-backend/internal/staff"
	"github.com/isaacstephens/gymman-backend/internal/trainers"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

type registerStaffRequest struct {
	SSN            string `json:"ssn" validate:"required"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	EmploymentDate string `json:"employment_date,omitempty"`
	BirthDate      string `json:"birth_date" validate:"required"`
	Address        string `json:"address" validate:"required"`
	StaffType      string `json:"staff_type" validate:"required"`

	HourlyRate     string `json:"hourly_rate,omitempty"`
	AnnualSalary   string `json:"annual_salary,omitempty"`
	ManagerShift   string `json:"manager_shift,omitempty"`
	ContractorType string `json:"contractor_type,omitempty"`
	ContractorInfo string `json:"contractor_info,omitempty"`
}

type registerTrainerRequest struct {
	Speciality string `json:"speciality" validate:"required"`
	Active     *bool  `json:"active,omitempty"`
}

// StaffRegister creates the base staff row plus its specialization.
func StaffRegister(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerStaffRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		staffType, err := enums.ParseStaffType(body.StaffType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff type"))
			return
		}

		dto, err := svc.Register(r.Context(), staff.RegisterInput{
			SSN:            body.SSN,
			FirstName:      body.FirstName,
			LastName:       body.LastName,
			EmploymentDate: body.EmploymentDate,
			BirthDate:      body.BirthDate,
			Address:        body.Address,
			StaffType:      staffType,
			HourlyRate:     body.HourlyRate,
			AnnualSalary:   body.AnnualSalary,
			ManagerShift:   body.ManagerShift,
			ContractorType: body.ContractorType,
			ContractorInfo: body.ContractorInfo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// StaffRegisterTrainer attaches the trainer capability to a staff record.
func StaffRegisterTrainer(svc trainers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staffID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registerTrainerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if body.Active != nil {
			active = *body.Active
		}

		dto, err := svc.RegisterTrainer(r.Context(), staffID, body.Speciality, active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}
