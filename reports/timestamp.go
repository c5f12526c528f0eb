package reports

import "time"

// InvalidDate is what FormatTimestamp returns for timestamps it cannot read.
const InvalidDate = "invalid date"

// DisplayLayout is the layout used to show timestamps to users.
const DisplayLayout = "02/01/2006 15:04"

var zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}

// localLayouts are read in the local zone. The first one is what older
// exports stored.
var localLayouts = []string{
	"02/01/2006, 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseTimestamp reads a report creation timestamp.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a stored timestamp in local time, or InvalidDate.
func FormatTimestamp(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return InvalidDate
	}
	return t.Local().Format(DisplayLayout)
}
