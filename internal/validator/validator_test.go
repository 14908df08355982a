package validator

import (
	"testing"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid vodafone", "01012345678", true},
		{"valid etisalat", "01112345678", true},
		{"ten digits", "0101234567", false},
		{"twelve digits", "010123456789", false},
		{"wrong prefix", "02012345678", false},
		{"letters", "0101234567a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPhone(tt.input); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidNationalID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "30303030303030", true},
		{"thirteen digits", "3030303030303", false},
		{"fifteen digits", "303030303030303", false},
		{"with separators", "303-0303-030303", false}, // raw form only
		{"letters", "3030303030303a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidNationalID(tt.input); got != tt.want {
				t.Errorf("IsValidNationalID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsArabicText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"arabic name", "أحمد محمود", true},
		{"single word", "هندسة", true},
		{"latin letters", "Ahmed", false},
		{"mixed", "أحمد Ahmed", false},
		{"digits", "أحمد2", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArabicText(tt.input); got != tt.want {
				t.Errorf("IsArabicText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "30303030303030", "30303030303030"},
		{"dashes", "303-0303-030303-0", "30303030303030"},
		{"spaces and trim", "  303 0303 030303 0  ", "30303030303030"},
		{"letters stripped", "a1b2c3", "123"},
		{"nothing left", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DigitsOnly(tt.input); got != tt.want {
				t.Errorf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestArabicOnly(t *testing.T) {
	if got := ArabicOnly("أحمد Ahmed 123"); got != "أحمد  " {
		t.Errorf("ArabicOnly stripped wrong runes, got %q", got)
	}
}

func TestValidateInquiry(t *testing.T) {
	v := New()

	t.Run("normalizes formatted input", func(t *testing.T) {
		normalized, errs := v.ValidateInquiry("303-0303-030303-0")
		if errs.HasErrors() {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if normalized != "30303030303030" {
			t.Errorf("normalized = %q", normalized)
		}
	})

	t.Run("rejects wrong length after normalization", func(t *testing.T) {
		for _, input := range []string{"123", "3030303030303", "303030303030303", ""} {
			if _, errs := v.ValidateInquiry(input); !errs.HasErrors() {
				t.Errorf("expected rejection for %q", input)
			}
		}
	})
}

func TestValidateApplicationCreate(t *testing.T) {
	v := New()

	valid := func() *ApplicationCreateRequest {
		return &ApplicationCreateRequest{
			StudentType:  "new",
			FullName:     "أحمد محمود",
			StudentID:    "20250001",
			Email:        "a@example.edu",
			Phone:        "01012345678",
			Major:        "هندسة",
			GPA:          88,
			Address:      "شارع الجامعة",
			Governorate:  "القاهرة",
			FamilyIncome: "5000",
		}
	}

	t.Run("valid new student", func(t *testing.T) {
		if errs := v.ValidateApplicationCreate(valid()); errs.HasErrors() {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("national id optional", func(t *testing.T) {
		req := valid()
		req.NationalID = ""
		if errs := v.ValidateApplicationCreate(req); errs.HasErrors() {
			t.Errorf("empty national id must pass, got %v", errs)
		}

		req.NationalID = "123"
		if errs := v.ValidateApplicationCreate(req); !errs.HasErrors() {
			t.Error("present but short national id must fail")
		}
	})

	t.Run("latin name rejected", func(t *testing.T) {
		req := valid()
		req.FullName = "Ahmed Mahmoud"
		errs := v.ValidateApplicationCreate(req)
		if !errs.HasErrors() {
			t.Fatal("expected an arabic_text failure")
		}
		if errs[0].Field != "fullname" && errs[0].Field != "full_name" {
			t.Logf("failed field: %s", errs[0].Field)
		}
	})

	t.Run("old student gpa scale", func(t *testing.T) {
		req := valid()
		req.StudentType = "old"
		req.GPA = 3.4
		if errs := v.ValidateApplicationCreate(req); errs.HasErrors() {
			t.Errorf("3.4 on the 0-4 scale must pass, got %v", errs)
		}

		req.GPA = 88
		if errs := v.ValidateApplicationCreate(req); !errs.HasErrors() {
			t.Error("88 on the 0-4 scale must fail")
		}
	})

	t.Run("unknown student type", func(t *testing.T) {
		req := valid()
		req.StudentType = "transfer"
		if errs := v.ValidateApplicationCreate(req); !errs.HasErrors() {
			t.Error("unknown student type must fail the oneof rule")
		}
	})
}
