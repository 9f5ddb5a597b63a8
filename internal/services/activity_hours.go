package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/terramonte/ridgeline/internal/models"
)

// Legacy convention: tour leaders used to encode manually entered hours
// inside the activity name, e.g. "Zimski uspon [manual: 6h]". Kept only as a
// read-compatibility shim for old rows; new entries use the explicit
// ManualHours field.
var manualEntryNamePattern = regexp.MustCompile(`(?i)\[manual:\s*([0-9]+(?:[.,][0-9]+)?)\s*h?\]`)

// Role recognition percentages applied when no participant override is set.
const (
	guidePercentage          = 100
	assistantGuidePercentage = 50
	regularPercentage        = 10
)

// ActivityHours derives the raw hours of a completed activity. Precedence,
// first match wins:
//  1. the maximum positive manual_hours across participants
//  2. the activity's own manual_hours field
//  3. a legacy manual-entry marker embedded in the name
//  4. actual end minus actual start, clamped at zero
// Anything not completed yields zero, as do missing fields.
func ActivityHours(activity models.Activity) float64 {
	if activity.Status != models.ActivityCompleted {
		return 0
	}

	maxManual := 0.0
	for _, participation := range activity.Participations {
		if participation.ManualHours != nil && *participation.ManualHours > maxManual {
			maxManual = *participation.ManualHours
		}
	}
	if maxManual > 0 {
		return maxManual
	}

	return activityBaseHours(activity)
}

// activityBaseHours is the activity-level derivation shared by activity and
// participant calculations: explicit field, legacy name marker, timestamps.
func activityBaseHours(activity models.Activity) float64 {
	if activity.ManualHours != nil && *activity.ManualHours > 0 {
		return *activity.ManualHours
	}

	if hours, ok := manualHoursFromName(activity.Name); ok {
		return hours
	}

	if activity.ActualStartTime != nil && activity.ActualEndTime != nil {
		elapsed := activity.ActualEndTime.Sub(*activity.ActualStartTime).Hours()
		if elapsed > 0 {
			return elapsed
		}
	}
	return 0
}

func manualHoursFromName(name string) (float64, bool) {
	matches := manualEntryNamePattern.FindStringSubmatch(name)
	if len(matches) != 2 {
		return 0, false
	}
	normalized := strings.ReplaceAll(matches[1], ",", ".")
	hours, err := strconv.ParseFloat(normalized, 64)
	if err != nil || hours <= 0 {
		return 0, false
	}
	return hours, true
}

// ParticipantHours credits a participant: their own manual hours when set,
// otherwise the activity-level derivation, scaled by the recognition
// percentage (participant override, else role default) and the activity's
// recognition percentage. Rounded to two decimals.
func ParticipantHours(activity models.Activity, participation models.ActivityParticipation) float64 {
	if activity.Status != models.ActivityCompleted {
		return 0
	}

	base := activityBaseHours(activity)
	if participation.ManualHours != nil && *participation.ManualHours > 0 {
		base = *participation.ManualHours
	}
	if base <= 0 {
		return 0
	}

	percentage := RolePercentage(activity, participation.Role)
	if participation.RecognitionOverride != nil {
		percentage = *participation.RecognitionOverride
	}

	activityPercentage := activity.RecognitionPercentage
	if activityPercentage <= 0 {
		activityPercentage = models.DefaultRecognitionPercentage
	}

	credited := base * float64(percentage) / 100 * float64(activityPercentage) / 100
	return roundHours(credited)
}

// RolePercentage returns the default recognition percentage for a role on
// the given activity. The driver share is tiered by how many drivers the
// activity has: one driver keeps 100%, two split to 50%, three to 33%, four
// or more to 25%.
func RolePercentage(activity models.Activity, role string) int {
	switch role {
	case models.RoleGuide:
		return guidePercentage
	case models.RoleAssistantGuide:
		return assistantGuidePercentage
	case models.RoleDriver:
		return driverPercentage(countDrivers(activity))
	default:
		return regularPercentage
	}
}

func driverPercentage(drivers int) int {
	switch {
	case drivers <= 1:
		return 100
	case drivers == 2:
		return 50
	case drivers == 3:
		return 33
	default:
		return 25
	}
}

func countDrivers(activity models.Activity) int {
	drivers := 0
	for _, participation := range activity.Participations {
		if participation.Role == models.RoleDriver {
			drivers++
		}
	}
	return drivers
}

// TotalActivityHours sums derived hours across a collection, counting only
// completed activities.
func TotalActivityHours(activities []models.Activity) float64 {
	total := 0.0
	for _, activity := range activities {
		total += ActivityHours(activity)
	}
	return roundHours(total)
}

// MemberCreditedHours sums the member's credited hours across the collection.
func MemberCreditedHours(activities []models.Activity, memberID uint) float64 {
	total := 0.0
	for _, activity := range activities {
		for _, participation := range activity.Participations {
			if participation.MemberID == memberID {
				total += ParticipantHours(activity, participation)
			}
		}
	}
	return roundHours(total)
}

func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
