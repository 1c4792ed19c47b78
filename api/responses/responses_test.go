package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
)

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestWriteSuccessEnvelope(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteSuccess(resp, map[string]string{"hello": "world"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	if !ok || data["hello"] != "world" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestWriteSuccessStatusCreated(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteSuccessStatus(resp, http.StatusCreated, map[string]uint{"id": 3})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestWriteErrorMapsTypedCodes(t *testing.T) {
	cases := []struct {
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "name is required"), http.StatusBadRequest, "VALIDATION_ERROR", "name is required"},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "member not found"), http.StatusNotFound, "NOT_FOUND", "member not found"},
		{pkgerrors.New(pkgerrors.CodeConflict, "username already taken"), http.StatusConflict, "CONFLICT", "username already taken"},
	}

	for _, tc := range cases {
		resp := httptest.NewRecorder()
		WriteError(context.Background(), nil, resp, tc.err)

		if resp.Code != tc.wantStatus {
			t.Fatalf("%s: expected %d got %d", tc.wantCode, tc.wantStatus, resp.Code)
		}
		body := decodeBody(t, resp)
		errObj := body["error"].(map[string]any)
		if errObj["code"] != tc.wantCode {
			t.Fatalf("expected code %s got %v", tc.wantCode, errObj["code"])
		}
		if errObj["message"] != tc.wantMessage {
			t.Fatalf("expected message %q got %v", tc.wantMessage, errObj["message"])
		}
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, pkgerrors.New(pkgerrors.CodeInternal, "pg connection string leaked"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	if errObj["message"] != "internal server error" {
		t.Fatalf("internal detail leaked: %v", errObj["message"])
	}
}

func TestWriteErrorWrapsUntypedErrors(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, fmt.Errorf("boom"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	if errObj["code"] != "INTERNAL_ERROR" {
		t.Fatalf("expected internal code got %v", errObj["code"])
	}
}

func TestWriteErrorDetailsGate(t *testing.T) {
	// Validation allows structured details.
	resp := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"email": "must contain @"})
	WriteError(context.Background(), nil, resp, err)

	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	details, ok := errObj["details"].(map[string]any)
	if !ok || details["email"] != "must contain @" {
		t.Fatalf("expected validation details, got %v", errObj)
	}

	// Conflict does not, even when details are attached.
	resp = httptest.NewRecorder()
	err = pkgerrors.New(pkgerrors.CodeConflict, "duplicate").
		WithDetails(map[string]string{"constraint": "users_username_key"})
	WriteError(context.Background(), nil, resp, err)

	body = decodeBody(t, resp)
	errObj = body["error"].(map[string]any)
	if _, present := errObj["details"]; present {
		t.Fatalf("conflict details must be suppressed, got %v", errObj)
	}
}
