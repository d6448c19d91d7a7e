package usecase

import (
	"strings"
	"time"

	"cafepos/internal/validator"
)

const dateLayout = "2006-01-02"

// parseDayRange はYYYY-MM-DDの範囲を営業タイムゾーンの[from, to+1日)にする。
// 空なら制限なし。
func parseDayRange(loc *time.Location, from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	fields := validator.Fields{}

	if strings.TrimSpace(from) != "" {
		d, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			fields["from"] = "must be YYYY-MM-DD"
		} else {
			start = &d
		}
	}
	if strings.TrimSpace(to) != "" {
		d, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			fields["to"] = "must be YYYY-MM-DD"
		} else {
			next := d.AddDate(0, 0, 1)
			end = &next
		}
	}
	if err := fieldsError(fields); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, NewValidationError(map[string]string{"to": "must not be before from"})
	}
	return start, end, nil
}
