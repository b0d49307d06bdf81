package allocation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInputToHours(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		capacity float64
		mode     Mode
		want     float64
	}{
		{"plain hours", "8", 40, ModeHours, 8},
		{"fractional hours", "7.5", 40, ModeHours, 7.5},
		{"hours with whitespace", "  8  ", 40, ModeHours, 8},
		{"empty input is zero", "", 40, ModeHours, 0},
		{"lone minus is zero", "-", 40, ModeHours, 0},
		{"negative is zero", "-4", 40, ModeHours, 0},
		{"garbage is zero", "eight", 40, ModeHours, 0},
		{"25 percent of 40h", "25", 40, ModePercentage, 10},
		{"100 percent of 40h", "100", 40, ModePercentage, 40},
		{"125 percent of 40h", "125", 40, ModePercentage, 50},
		{"percentage rounds to 2dp", "33.333", 40, ModePercentage, 13.33},
		{"hours round to 2dp", "7.999", 40, ModeHours, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInputToHours(tt.input, tt.capacity, tt.mode))
		})
	}
}

func TestHoursToInputDisplay(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		capacity float64
		mode     Mode
		want     string
	}{
		{"zero hours is blank", 0, 40, ModeHours, ""},
		{"negative hours is blank", -2, 40, ModeHours, ""},
		{"whole hours without decimal", 8, 40, ModeHours, "8"},
		{"fractional hours keep decimals", 7.5, 40, ModeHours, "7.5"},
		{"percentage of capacity", 10, 40, ModePercentage, "25"},
		{"fractional percentage", 10.5, 40, ModePercentage, "26.25"},
		{"zero capacity in percentage mode", 10, 0, ModePercentage, "0"},
		{"zero hours blank in percentage mode too", 0, 40, ModePercentage, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HoursToInputDisplay(tt.hours, tt.capacity, tt.mode))
		})
	}
}

func TestFormatHoursForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		capacity float64
		mode     Mode
		want     string
	}{
		{"zero renders explicitly in hours mode", 0, 40, ModeHours, "0h"},
		{"zero renders explicitly in percentage mode", 0, 40, ModePercentage, "0%"},
		{"hours with suffix", 7.5, 40, ModeHours, "7.5h"},
		{"percentage with suffix", 10, 40, ModePercentage, "25%"},
		{"zero capacity in percentage mode", 10, 0, ModePercentage, "0%"},
		{"negative clamps to zero", -3, 40, ModeHours, "0h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHoursForDisplay(tt.hours, tt.capacity, tt.mode))
		})
	}
}

// The round-trip law: displaying stored hours and parsing the result back
// must reproduce the stored hours. Every allocation number shown anywhere
// depends on this holding in both modes.
func TestRoundTrip(t *testing.T) {
	hoursCases := []float64{0, 0.5, 4, 8, 10, 10.5, 40, 50}
	capacities := []float64{40, 37.5, 20}

	for _, mode := range []Mode{ModeHours, ModePercentage} {
		for _, capacity := range capacities {
			for _, hours := range hoursCases {
				display := HoursToInputDisplay(hours, capacity, mode)
				parsed := ParseInputToHours(display, capacity, mode)
				assert.InDelta(t, hours, parsed, 0.01,
					"mode=%s capacity=%v hours=%v display=%q", mode, capacity, hours, display)
			}
		}
	}
}

func TestValidateAllocationHours(t *testing.T) {
	// 100h of a 40h week is 250%, above a 200% ceiling
	result := ValidateAllocationHours(100, 40, 200)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Message)

	// 80h of a 40h week is exactly 200%: the boundary is inclusive
	result = ValidateAllocationHours(80, 40, 200)
	assert.True(t, result.Valid)

	result = ValidateAllocationHours(-1, 40, 200)
	assert.False(t, result.Valid)

	result = ValidateAllocationHours(math.NaN(), 40, 200)
	assert.False(t, result.Valid)

	result = ValidateAllocationHours(math.Inf(1), 40, 200)
	assert.False(t, result.Valid)

	// without a usable capacity only the numeric checks apply
	result = ValidateAllocationHours(100, 0, 200)
	assert.True(t, result.Valid)
}

func TestValidateTotalAllocation(t *testing.T) {
	// 20h project + 15h elsewhere + 5h leave = 40h = 100% of capacity
	result := ValidateTotalAllocation(20, 15, 5, 40, 200)
	assert.True(t, result.Valid)
	assert.Equal(t, 40.0, result.TotalHours)
	assert.Equal(t, 100.0, result.TotalPercent)

	// pushing the same member to 90h = 225% breaks a 200% ceiling
	result = ValidateTotalAllocation(70, 15, 5, 40, 200)
	assert.False(t, result.Valid)
	assert.Equal(t, 90.0, result.TotalHours)
	assert.Equal(t, 225.0, result.TotalPercent)
	assert.NotEmpty(t, result.Message)

	// exactly at the ceiling stays valid
	result = ValidateTotalAllocation(60, 15, 5, 40, 200)
	assert.True(t, result.Valid)
	assert.Equal(t, 200.0, result.TotalPercent)

	result = ValidateTotalAllocation(-1, 0, 0, 40, 200)
	assert.False(t, result.Valid)
}

func TestInputConfig(t *testing.T) {
	pct := InputConfig(ModePercentage, 40)
	assert.Equal(t, Config{Step: 1, Min: 0, Max: 300, Placeholder: "0"}, pct)

	hours := InputConfig(ModeHours, 40)
	assert.Equal(t, Config{Step: 0.5, Min: 0, Max: 120, Placeholder: "0"}, hours)
}
