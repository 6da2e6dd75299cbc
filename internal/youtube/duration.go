package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// ISO-8601 duration as returned in contentDetails.duration, e.g. PT1H2M3S or P1DT2H
var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

const zeroDuration = "0:00"

// FormatDuration converts an ISO-8601 duration into a clock string
//
// "PT1H2M3S" becomes "1:02:03", "PT5M9S" becomes "5:09". The hour segment is
// omitted when zero; days are folded into hours. Malformed input yields "0:00".
func FormatDuration(iso string) string {
	m := isoDurationRegex.FindStringSubmatch(iso)
	if m == nil {
		return zeroDuration
	}

	part := func(s string) int {
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return n
	}

	hours := part(m[1])*24 + part(m[2])
	minutes := part(m[3])
	seconds := part(m[4])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
