package repositories

import (
	"testing"

	"github.com/gradesphere/gradesphere/internal/pkg/validation"
)

func TestFormatStudentNumber(t *testing.T) {
	tests := []struct {
		year int
		seq  int64
		want string
	}{
		{2026, 1, "STU20260001"},
		{2026, 42, "STU20260042"},
		{2026, 9999, "STU20269999"},
		{2026, 10000, "STU202610000"},
		{2027, 10042, "STU202710042"},
	}

	for _, tt := range tests {
		got := formatStudentNumber(tt.year, tt.seq)
		if got != tt.want {
			t.Errorf("formatStudentNumber(%d, %d) = %q, want %q", tt.year, tt.seq, got, tt.want)
		}
		if !validation.IsValidStudentNumber(got) {
			t.Errorf("formatStudentNumber(%d, %d) = %q does not match the student number format", tt.year, tt.seq, got)
		}
	}
}

// Sequence values past four digits must stay distinct, not wrap onto an
// earlier allocation.
func TestFormatStudentNumber_NoWraparound(t *testing.T) {
	early := formatStudentNumber(2026, 43)
	late := formatStudentNumber(2026, 10043)
	if early == late {
		t.Fatalf("sequence 10043 collides with 43: both map to %q", early)
	}
}
