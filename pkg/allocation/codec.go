package allocation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects how allocation input fields are interpreted: as raw hours or
// as a percentage of the member's weekly capacity.
type Mode string

const (
	ModeHours      Mode = "hours"
	ModePercentage Mode = "percentage"
)

// Validation is the outcome of a single-value check. Invalid input is a
// normal result here, not an error value: the message is rendered inline
// next to the field that produced it.
type Validation struct {
	Valid   bool
	Message string
}

// TotalValidation is the outcome of checking a member's full weekly
// commitment after editing one project's allocation.
type TotalValidation struct {
	Valid        bool
	Message      string
	TotalHours   float64
	TotalPercent float64
}

// Config describes the numeric input field for a mode so every edit surface
// renders the same constraints.
type Config struct {
	Step        float64
	Min         float64
	Max         float64
	Placeholder string
}

// ParseInputToHours converts a user-entered string into stored hours.
// Empty input, "-", and non-finite or negative values all mean zero. In
// percentage mode the value is a percentage of capacity. The result is
// rounded to two decimals so repeated edits cannot accumulate float drift.
func ParseInputToHours(input string, capacity float64, mode Mode) float64 {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || trimmed == "-" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	if mode == ModePercentage {
		value = value / 100 * capacity
	}
	return round2(value)
}

// HoursToInputDisplay renders stored hours back into the input field. Zero
// (and anything below) renders as an empty string so untouched cells read
// as blank rather than "0".
func HoursToInputDisplay(hours float64, capacity float64, mode Mode) string {
	if hours <= 0 {
		return ""
	}
	if mode == ModePercentage {
		if capacity <= 0 {
			return "0"
		}
		return formatNumber(hours / capacity * 100)
	}
	return formatNumber(hours)
}

// FormatHoursForDisplay renders hours for read-only surfaces with a unit
// suffix. Unlike HoursToInputDisplay, zero is rendered explicitly ("0h",
// "0%"); both behaviors are intentional and must not be unified.
func FormatHoursForDisplay(hours float64, capacity float64, mode Mode) string {
	if hours <= 0 {
		hours = 0
	}
	if mode == ModePercentage {
		if capacity <= 0 {
			return "0%"
		}
		return formatNumber(hours/capacity*100) + "%"
	}
	return formatNumber(hours) + "h"
}

// ValidateAllocationHours checks a single allocation value against the
// commitment ceiling. The boundary is inclusive: exactly maxPercent is valid.
func ValidateAllocationHours(hours float64, capacity float64, maxPercent float64) Validation {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return Validation{Valid: false, Message: "Hours must be a number"}
	}
	if hours < 0 {
		return Validation{Valid: false, Message: "Hours cannot be negative"}
	}
	if capacity > 0 {
		percent := hours / capacity * 100
		if percent > maxPercent {
			return Validation{
				Valid:   false,
				Message: fmt.Sprintf("Allocation exceeds %s of weekly capacity", formatNumber(maxPercent)+"%"),
			}
		}
	}
	return Validation{Valid: true}
}

// ValidateTotalAllocation checks that editing one project's allocation keeps
// the member's total weekly commitment (other projects and leave included)
// under the ceiling.
func ValidateTotalAllocation(projectHours, otherProjectsHours, leaveHours, capacity, maxPercent float64) TotalValidation {
	single := ValidateAllocationHours(projectHours, capacity, math.Inf(1))
	if !single.Valid {
		return TotalValidation{Valid: false, Message: single.Message}
	}

	totalHours := round2(projectHours + otherProjectsHours + leaveHours)
	totalPercent := 0.0
	if capacity > 0 {
		totalPercent = round2(totalHours / capacity * 100)
	}
	if capacity > 0 && totalPercent > maxPercent {
		return TotalValidation{
			Valid: false,
			Message: fmt.Sprintf("Total commitment %s exceeds %s of weekly capacity",
				formatNumber(totalPercent)+"%", formatNumber(maxPercent)+"%"),
			TotalHours:   totalHours,
			TotalPercent: totalPercent,
		}
	}
	return TotalValidation{Valid: true, TotalHours: totalHours, TotalPercent: totalPercent}
}

// InputConfig returns the numeric input constraints for a mode. Percentage
// entry allows up to 300% so deliberate overtime can be typed in; the
// commitment ceiling is enforced separately by validation.
func InputConfig(mode Mode, capacity float64) Config {
	if mode == ModePercentage {
		return Config{Step: 1, Min: 0, Max: 300, Placeholder: "0"}
	}
	return Config{Step: 0.5, Min: 0, Max: 3 * capacity, Placeholder: "0"}
}

// round2 rounds to two decimal places. All hours stored or displayed by the
// codec pass through here; it is what makes display/parse round-trips stable.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// formatNumber renders a float without a trailing ".0" ("8", "7.5", "26.25").
func formatNumber(x float64) string {
	return strconv.FormatFloat(round2(x), 'f', -1, 64)
}
