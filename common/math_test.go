package common

import "testing"

func TestClampAndSign(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"clamp_low", Clamp(-2, 0, 1), 0},
		{"clamp_high", Clamp(5, 0, 1), 1},
		{"clamp_inside", Clamp(0.25, 0, 1), 0.25},
		{"sign_negative", Sign(-0.5), -1},
		{"sign_zero", Sign(0), 1},
		{"sign_positive", Sign(3), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, tc.got)
			}
		})
	}
}
