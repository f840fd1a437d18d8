// File: services/availability/request.go
package availability

import (
	"strings"
	"time"

	"femicare/models"
	"femicare/utils"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// ParseGenerateRequest converts the wire form of a template (weekday names,
// "HH:MM" clock strings) into the internal minutes-from-midnight request.
func ParseGenerateRequest(weekdays []string, start, end string, duration int) (models.GenerateSlotsRequest, error) {
	var req models.GenerateSlotsRequest

	seen := make(map[time.Weekday]struct{})
	for _, name := range weekdays {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return req, NewValidationError("unknown weekday: " + name)
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		req.Weekdays = append(req.Weekdays, day)
	}

	startMin, err := utils.ParseClock(start)
	if err != nil {
		return req, NewValidationError(err.Error())
	}
	endMin, err := utils.ParseClock(end)
	if err != nil {
		return req, NewValidationError(err.Error())
	}

	req.Start = startMin
	req.End = endMin
	req.Duration = duration
	return req, nil
}
