package sqrt

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func TestAgree(t *testing.T) {
	t.Parallel()
	dc := Precision{Digits: 30, MaxSteps: 1, TargetDigits: 1}.Context()
	tests := []struct {
		name   string
		x, y   string
		digits int
		agree  bool
	}{
		{"identical", "1.41421356", "1.41421356", 9, true},
		{"different representation", "2.000", "2", 30, true},
		{"last digit off within tolerance", "1.4142135623", "1.4142135624", 10, true},
		{"off by more than tolerance", "1.4142135623", "1.4142135723", 10, false},
		{"zeros", "0", "0", 5, true},
		{"zero versus non-zero", "0.001", "0", 5, false},
		{"large magnitude", "1.0000000001E+50", "1E+50", 10, true},
		{"small magnitude", "1.01E-50", "1E-50", 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, _, _ := apd.NewFromString(tt.x)
			y, _, _ := apd.NewFromString(tt.y)
			got, err := Agree(dc, x, y, tt.digits)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.agree {
				t.Errorf("Agree(%s, %s, %d) = %v, expected %v", tt.x, tt.y, tt.digits, got, tt.agree)
			}
		})
	}
}

func TestAgreementDigits(t *testing.T) {
	t.Parallel()
	cases := []struct {
		digits, target, want int
	}{
		{200, 200, 198},
		{200, 50, 49},
		{30, 25, 24},
		{3, 200, 1},
		{2, 200, 1},
		{1, 1, 1},
	}
	for _, tc := range cases {
		p := Precision{Digits: tc.digits, MaxSteps: 1, TargetDigits: tc.target}
		if got := AgreementDigits(p); got != tc.want {
			t.Errorf("AgreementDigits(%d, %d) = %d, want %d", tc.digits, tc.target, got, tc.want)
		}
	}
}
