package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/abook/pkg/core"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123456789", true},
		{"000000000", true},
		{"12345", false},
		{"1234567890", false},
		{"12345678a", false},
		{"+23456789", false},
		{"123-456-789", false},
		{"123 456 789", false},
		{"123456789\n", false},
		{"١٢٣٤٥٦٧٨٩", false}, // non-ASCII digits
		{"", false},
	}

	for _, tt := range tests {
		if got := core.ValidatePhone(tt.input); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidatePhone_AllNineDigitStrings(t *testing.T) {
	// Walk a spread of 9-digit values, including leading zeros.
	for n := 0; n < 1_000_000_000; n += 7_654_321 {
		s := fmt.Sprintf("%09d", n)
		if !core.ValidatePhone(s) {
			t.Fatalf("expected %s to be valid", s)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"jan@example.com", true},
		{"first.last+tag@mail-server.co.uk", true},
		{"a_b-c@x.y", true},
		{"jan@example", false},       // no dot in domain
		{"@example.com", false},      // empty local part
		{"jan@@example.com", false},  // two @
		{"jan@exa_mple.com", false},  // underscore in domain
		{"jan kowalski@x.pl", false}, // space in local part
		{"jan@.com", false},          // empty first label
		{"jan@example.com ", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := core.ValidateEmail(tt.input); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewPhone(t *testing.T) {
	t.Run("Rejects Short Number", func(t *testing.T) {
		_, err := core.NewPhone("12345")
		if !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		var verr *core.ValidationError
		if !errors.As(err, &verr) || verr.Field != core.FieldPhone {
			t.Errorf("expected phone ValidationError, got %#v", err)
		}
	})

	t.Run("Accepts Nine Digits", func(t *testing.T) {
		p, err := core.NewPhone("123456789")
		if err != nil {
			t.Fatalf("NewPhone failed: %v", err)
		}
		if p.String() != "123456789" {
			t.Errorf("expected 123456789, got %s", p)
		}
	})
}

func TestNewEmail(t *testing.T) {
	if _, err := core.NewEmail("not-an-email"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	e, err := core.NewEmail("jan@example.com")
	if err != nil {
		t.Fatalf("NewEmail failed: %v", err)
	}
	if e.String() != "jan@example.com" {
		t.Errorf("unexpected value %s", e)
	}
}

func TestNewName(t *testing.T) {
	if _, err := core.NewName("   "); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}
	n, err := core.NewName("  Jan Kowalski ")
	if err != nil {
		t.Fatalf("NewName failed: %v", err)
	}
	if n.String() != "Jan Kowalski" {
		t.Errorf("expected trimmed name, got %q", n)
	}
}
