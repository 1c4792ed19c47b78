package controllers

import (
	"net/http"
	"strconv"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/api/validators"
	"github.com/isaacstephens/gymman-backend/internal/payments"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

type addPaymentRequest struct {
	MemberID uint   `json:"member_id" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Date     string `json:"date,omitempty"`
	Status   string `json:"status,omitempty"`
	Type     string `json:"type,omitempty"`
}

// PaymentsAdd records a ledger entry.
func PaymentsAdd(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Add(r.Context(), payments.AddPaymentInput{
			MemberID: body.MemberID,
			Amount:   body.Amount,
			Date:     body.Date,
			Status:   body.Status,
			Type:     body.Type,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// PaymentsSearch serves GET /payments?member=&from=&to=&status=.
func PaymentsSearch(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		list, err := svc.Search(r.Context(), payments.SearchInput{
			MemberQuery: query.Get("member"),
			From:        query.Get("from"),
			To:          query.Get("to"),
			Status:      query.Get("status"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PaymentsPending lists unpaid rows newest first.
func PaymentsPending(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PaymentsRevenue serves GET /payments/revenue?member_id=&days=.
func PaymentsRevenue(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var memberID *uint
		if raw := query.Get("member_id"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid member_id"))
				return
			}
			id := uint(parsed)
			memberID = &id
		}

		var days *int
		if raw := query.Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid days"))
				return
			}
			days = &parsed
		}

		total, err := svc.AggregateRevenue(r.Context(), memberID, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"revenue": total.StringFixed(2)})
	}
}
