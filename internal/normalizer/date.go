package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// datePattern matches day, month and a 2- or 4-digit year separated by
// '-', '_', '/' or '.'; a 4-digit leading group is read year-first.
var datePattern = regexp.MustCompile(`(\d{1,4})[-_/.](\d{1,2})[-_/.](\d{1,4})`)

// DateFromFileName extracts a calendar-valid date from a display file name and
// renders it as ISO YYYY-MM-DD. Returns false when no valid date is present.
func DateFromFileName(name string) (string, bool) {
	m := datePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}

	var dayS, monthS, yearS string
	switch {
	case len(m[1]) == 4:
		yearS, monthS, dayS = m[1], m[2], m[3]
	case len(m[3]) == 2 || len(m[3]) == 4:
		dayS, monthS, yearS = m[1], m[2], m[3]
	default:
		return "", false
	}
	if len(dayS) > 2 || len(yearS) == 3 {
		return "", false
	}

	day, _ := strconv.Atoi(dayS)
	month, _ := strconv.Atoi(monthS)
	year, _ := strconv.Atoi(yearS)
	if year < 100 {
		year += 2000
	}

	// time.Date normalizes out-of-range components, so a round-trip check
	// rejects dates like 32-13-99.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
