package normalize

import (
	"regexp"
	"time"

	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/araddon/dateparse"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CanonicalDate 將日期轉為 YYYY-MM-DD。
// 已是 YYYY-MM-DD 格式的值原樣保留；其他格式以 UTC 解析後取日期部分，
// 帶時區的值會先換算成 UTC。
func CanonicalDate(value string) (string, error) {
	if isoDatePattern.MatchString(value) {
		return value, nil
	}

	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return "", apperrors.ErrInvalidDate
	}
	return parsed.UTC().Format(time.DateOnly), nil
}
