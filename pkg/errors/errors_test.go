package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	meta := MetadataFor(CodeNotFound)
	if meta.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 for not found, got %d", meta.HTTPStatus)
	}
	if meta.DetailsAllowed {
		t.Fatal("not found must not leak details")
	}

	// Unknown codes fall back to the internal metadata.
	meta = MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(CodeDependency, cause, "storage unavailable")

	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeInternal, nil, "boom")
	if err.Unwrap() != nil {
		t.Fatal("expected nil cause")
	}
	if err.Code() != CodeInternal {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsUnwrapsNestedError(t *testing.T) {
	inner := New(CodeConflict, "duplicate username")
	outer := fmt.Errorf("creating member: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through wrapping")
	}
	if typed.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if typed.Message() != "duplicate username" {
		t.Fatalf("unexpected message %q", typed.Message())
	}

	if As(fmt.Errorf("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"name": "required"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["name"] != "required" {
		t.Fatalf("details not preserved: %v", err.Details())
	}
}
