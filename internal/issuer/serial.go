package issuer

import (
	"fmt"
	"time"
)

// SerialNumber derives the decimal certificate serial for a point in time.
//
// The serial encodes "yesterday" so clients whose clock runs slightly behind
// the server do not see a not-yet-valid serial date: on day 2 or later the day
// is decremented within the month, on day 1 the serial rolls back to a literal
// day 30 of the previous month. The day 30 is intentional even for February
// (March 1 yields "<year>023000"); downstream consumers depend on the exact
// digit sequence, so it is not corrected to the calendar. January 1 rolls to
// December 30 of the previous year.
//
// The result is YYYYMMDD followed by "00" and is stable for a whole day.
func SerialNumber(now time.Time) string {
	year, month, day := now.Date()

	switch {
	case day > 1:
		day--
	case month == time.January:
		year--
		month = time.December
		day = 30
	default:
		month--
		day = 30
	}

	return fmt.Sprintf("%04d%02d%02d00", year, int(month), day)
}
