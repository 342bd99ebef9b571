package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "go-gin-event-hub/pkg/app_errors"
)

var (
	clock24Pattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	clock12Pattern = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(am|pm)?\s*$`)
)

// CanonicalTime 將時間轉為 24 小時制 HH:MM。
// 已符合 24 小時制的值原樣保留，例如 "09:15"；"2:30 PM" -> "14:30"，"12:00 AM" -> "00:00"。
func CanonicalTime(value string) (string, error) {
	if clock24Pattern.MatchString(value) {
		return value, nil
	}

	m := clock12Pattern.FindStringSubmatch(value)
	if m == nil {
		return "", apperrors.ErrInvalidTime
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return "", apperrors.ErrInvalidTime
	}
	minutes := m[2]

	switch strings.ToLower(m[3]) {
	case "pm":
		if hours < 1 || hours > 12 {
			return "", apperrors.ErrInvalidTime
		}
		if hours != 12 {
			hours += 12
		}
	case "am":
		if hours < 1 || hours > 12 {
			return "", apperrors.ErrInvalidTime
		}
		if hours == 12 {
			hours = 0
		}
	}

	out := fmt.Sprintf("%02d:%s", hours, minutes)
	// e.g. "25:00" 或 "10:75"
	if !clock24Pattern.MatchString(out) {
		return "", apperrors.ErrInvalidTime
	}
	return out, nil
}
