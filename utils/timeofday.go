package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseMinuteOfDay converts an "HH:MM" clock string to minutes from midnight.
func ParseMinuteOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, errors.New("time must be in HH:MM format")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.New("time must be in HH:MM format")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.New("time must be in HH:MM format")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, errors.New("time out of range")
	}
	return hour*60 + minute, nil
}

// FormatMinuteOfDay renders minutes from midnight as "HH:MM".
func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
