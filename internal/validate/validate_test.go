package validate

import (
	"errors"
	"testing"
)

func TestRun_NoErrors(t *testing.T) {
	err := Run(
		Required("name", "Alice", "Name is required"),
		Email("email", "alice@example.com", "Please provide a valid email address"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_CollectsErrorsInOrder(t *testing.T) {
	err := Run(
		Required("name", "", "Name is required"),
		Email("email", "not-an-email", "Please provide a valid email address"),
	)
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %T", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(errs))
	}
	if errs[0].Field != "name" || errs[1].Field != "email" {
		t.Errorf("expected field order [name email], got [%s %s]", errs[0].Field, errs[1].Field)
	}
}

func TestLengthBetween(t *testing.T) {
	cases := []struct {
		name  string
		value string
		min   int
		max   int
		ok    bool
	}{
		{"below minimum", "hi", 5, 100, false},
		{"at minimum", "hello", 5, 100, true},
		{"at maximum", "abcde", 1, 5, true},
		{"above maximum", "abcdef", 1, 5, false},
		{"empty fails", "", 2, 50, false},
		{"whitespace trimmed before counting", "  ab  ", 3, 50, false},
		{"multibyte runes counted once", "héllo", 5, 5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Run(LengthBetween("f", tc.value, tc.min, tc.max, "bad length"))
			if tc.ok && err != nil {
				t.Errorf("expected pass, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected failure, got nil")
			}
		})
	}
}

func TestMaxLength_EmptyPasses(t *testing.T) {
	if err := Run(MaxLength("excerpt", "", 500, "too long")); err != nil {
		t.Errorf("expected empty optional field to pass, got %v", err)
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "  padded@example.com  "}
	for _, v := range valid {
		if err := Run(Email("email", v, "bad")); err != nil {
			t.Errorf("expected %q to be valid, got %v", v, err)
		}
	}
	invalid := []string{"", "plain", "a@b", "@example.com", "a b@example.com", "a@ex ample.com"}
	for _, v := range invalid {
		if err := Run(Email("email", v, "bad")); err == nil {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
