package validation

import (
	"strings"

	apperrors "community-pulse/pkg/app_errors"
)

const (
	MinAttendees = 1
	MaxAttendees = 10
)

// FilterAttendees 去除空白後丟棄空項目，保留原本順序
func FilterAttendees(names []string) []string {
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		filtered = append(filtered, trimmed)
	}
	return filtered
}

// ValidateAttendees 檢查過濾後的名單長度是否在 [MinAttendees, MaxAttendees]
func ValidateAttendees(filtered []string) error {
	if len(filtered) < MinAttendees {
		return apperrors.ErrNoAttendees
	}
	if len(filtered) > MaxAttendees {
		return apperrors.ErrTooManyAttendees
	}
	return nil
}
