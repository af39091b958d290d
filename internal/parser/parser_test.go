package parser

import (
	"testing"

	"github.com/insightdelivered/upi-statement-parser/internal/category"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected models.SourceType
		wantErr  bool
	}{
		{
			name:     "detects PhonePe by name",
			pages:    []string{"PhonePe\nFeb 20, 2026\nPaid to Swiggy ₹350"},
			expected: models.SourcePhonePe,
		},
		{
			name:     "detects PhonePe by statement header",
			pages:    []string{"Transaction Statement for 98XXXXXX10"},
			expected: models.SourcePhonePe,
		},
		{
			name:     "detects PhonePe on a later page",
			pages:    []string{"Page 1", "UTR No. 412345678901"},
			expected: models.SourcePhonePe,
		},
		{
			name:    "unknown statement returns error",
			pages:   []string{"Some Unknown Bank\nStatement"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AutoDetect(tt.pages)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	c, err := category.NewDefaultClassifier()
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	p, err := New(models.SourcePhonePe, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "PhonePe" {
		t.Errorf("Name() = %q, want %q", p.Name(), "PhonePe")
	}

	if _, err := New(models.SourceType("paytm"), c); err == nil {
		t.Error("expected error for unsupported source")
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		input   string
		want    models.SourceType
		wantErr bool
	}{
		{input: "phonepe", want: models.SourcePhonePe},
		{input: "PhonePe", want: models.SourcePhonePe},
		{input: " Phone Pe ", want: models.SourcePhonePe},
		{input: "gpay", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
