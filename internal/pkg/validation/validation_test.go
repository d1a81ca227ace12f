package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/buildhub/property-api/internal/core/domain"
)

type sample struct {
	ContactEmail string `validate:"required,email"`
	Tier         string `validate:"required,oneof=basic professional enterprise"`
}

func TestStruct_ReturnsValidationError(t *testing.T) {
	err := Struct(sample{ContactEmail: "not-an-email", Tier: "gold"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field messages, got %v", ve.Fields)
	}
	if !strings.HasPrefix(ve.Fields[0], "contact_email") {
		t.Fatalf("expected snake_case field name, got %q", ve.Fields[0])
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sample{ContactEmail: "a@b.io", Tier: "basic"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
