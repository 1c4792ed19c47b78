package controllers

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/api/validators"
	"github.com/isaacstephens/gymman-backend/internal/members"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

type createMemberRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	BirthDate string `json:"birth_date,omitempty"`
	Sex       string `json:"sex,omitempty"`
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type addPhoneRequest struct {
	Number string `json:"number" validate:"required"`
	Type   string `json:"type" validate:"required"`
}

type contactRequest struct {
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

// MembersLookup serves the front-desk search: GET /members?q=.
func MembersLookup(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := svc.Lookup(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, matches)
	}
}

// MembersCreate registers a member together with their login.
func MembersCreate(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createMemberRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), members.CreateMemberInput{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			Username:  body.Username,
			Password:  body.Password,
			BirthDate: body.BirthDate,
			Sex:       body.Sex,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// MembersDelete removes a member and every dependent row.
func MembersDelete(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.Delete(r.Context(), memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !deleted {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "member not found"))
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// MembersUpdateEmail rewrites a member's email and the paired login row.
func MembersUpdateEmail(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateEmailRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateEmail(r.Context(), memberID, body.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"email": body.Email})
	}
}

// MembersAddPhone attaches a phone number to a member.
func MembersAddPhone(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addPhoneRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddPhone(r.Context(), memberID, members.AddPhoneInput{
			Number: body.Number,
			Type:   body.Type,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// MembersDeletePhone removes a member's phone number.
func MembersDeletePhone(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		phoneID, err := validators.URLParamUint(r, "phoneId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePhone(r.Context(), memberID, phoneID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// MembersAddContact attaches an emergency contact to a member.
func MembersAddContact(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body contactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddEmergencyContact(r.Context(), memberID, members.ContactInput{
			FirstName:    body.FirstName,
			LastName:     body.LastName,
			Relationship: body.Relationship,
			Phone:        body.Phone,
			Email:        body.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// MembersUpdateContact partially updates an emergency contact.
func MembersUpdateContact(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contactID, err := validators.URLParamUint(r, "contactId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body contactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.UpdateEmergencyContact(r.Context(), memberID, contactID, members.ContactInput{
			FirstName:    body.FirstName,
			LastName:     body.LastName,
			Relationship: body.Relationship,
			Phone:        body.Phone,
			Email:        body.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

// MembersDeleteContact removes an emergency contact.
func MembersDeleteContact(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contactID, err := validators.URLParamUint(r, "contactId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteEmergencyContact(r.Context(), memberID, contactID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
