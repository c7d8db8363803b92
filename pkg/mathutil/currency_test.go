package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Monthly principal and interest", 1077.7072507, 1077.71},
		{"Monthly insurance of 950 a year", 950.0 / 12, 79.17},
		{"Monthly tax of 2200 a year", 2200.0 / 12, 183.33},
		{"Yearly figure already in cents", 12932.52, 12932.52},
		{"Half cent rounds up", 0.005, 0.01},
		{"Negative half cent rounds away from zero", -0.005, -0.01},
		{"Just under half cent", 0.0049, 0},
		{"Half cent below representable", 1.005, 1.0},
		{"Carries into the next dollar", 999999999.999, 1000000000},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Round(tt.input); result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundIsStable(t *testing.T) {
	for _, v := range []float64{1077.71, 79.17, 183.33, 1426.42, 20132.52} {
		if Round(Round(v)) != Round(v) {
			t.Errorf("Round(%v) is not stable", v)
		}
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"No down payment", 0, true},
		{"Rounding residue", 1e-9, true},
		{"Exactly one cent", 0.01, true},
		{"Negative cent", -0.01, true},
		{"Two cents", 0.02, false},
		{"Monthly insurance", 79.17, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Same payment", 1077.71, 1077.71, 0.01, true},
		{"Off by a cent", 1426.42, 1426.41, 0.011, true},
		{"Off by a dollar", 1426.42, 1425.42, 0.01, false},
		{"Summed yearly vs monthly times twelve", 17117.0, 1426.42 * 12, 0.1, true},
		{"Zero tolerance", 51.05, 51.050000000000004, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Twenty percent down", 60000, 300000, 20},
		{"Five percent down", 17500, 350000, 5},
		{"Nothing down", 0, 300000, 0},
		{"Price not entered", 50000, 0, 0},
		{"Down payment above price", 400000, 300000, 133.333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Five percent of 1021", 1021, 5, 51.05},
		{"Ten percent of 999999", 999999, 10, 99999.9},
		{"Ten percent of 200000", 200000, 10, 20000},
		{"Twenty percent of 450000", 450000, 20, 90000},
		{"Percentage of zero", 0, 20, 0},
		{"Zero percent", 300000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ApplyPercentage(tt.value, tt.percentage); result != tt.expected {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Zero", 0.0, true},
		{"Ordinary value", 1077.71, true},
		{"Negative value", -42.5, true},
		{"Largest float", math.MaxFloat64, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinite(tt.input); result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}
