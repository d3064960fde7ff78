package cookiejar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// endOfTime caps every stored expiration and doubles as the "no pending
// expiration" sentinel for the sweep index.
var endOfTime = time.Unix(1<<41, 0).UTC()

var (
	// Runs of characters outside the RFC 6265 date delimiter set
	// (%x09 / %x20-2F / %x3B-40 / %x5B-60 / %x7B-7E).
	dateTokenRe = regexp.MustCompile(`[^\x09\x20-\x2f\x3b-\x40\x5b-\x60\x7b-\x7e]+`)
	dateTimeRe  = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2})$`)
	dateDayRe   = regexp.MustCompile(`^\d{1,2}$`)
	dateYearRe  = regexp.MustCompile(`^\d{2,4}$`)
)

var monthAbbrevs = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// parseDate parses a cookie Expires value leniently per RFC 6265
// section 5.1.1. Tokens are scanned left to right, each of the four
// date components is satisfied by at most one token, in any order.
// Malformed input yields ok == false, never an error.
func parseDate(s string) (t time.Time, ok bool) {
	var hour, minute, second, day, month, year int
	var foundTime, foundDay, foundMonth, foundYear bool

	for _, token := range dateTokenRe.FindAllString(s, -1) {
		if !foundTime {
			if m := dateTimeRe.FindStringSubmatch(token); m != nil {
				hour, _ = strconv.Atoi(m[1])
				minute, _ = strconv.Atoi(m[2])
				second, _ = strconv.Atoi(m[3])
				foundTime = true
				continue
			}
		}
		if !foundDay && dateDayRe.MatchString(token) {
			day, _ = strconv.Atoi(token)
			foundDay = true
			continue
		}
		if !foundMonth && len(token) >= 3 {
			if i := monthIndex(token[:3]); i >= 0 {
				month = i + 1
				foundMonth = true
				continue
			}
		}
		if !foundYear && dateYearRe.MatchString(token) {
			year, _ = strconv.Atoi(token)
			foundYear = true
		}
	}

	if !foundTime || !foundDay || !foundMonth || !foundYear {
		return time.Time{}, false
	}

	switch {
	case year >= 70 && year <= 99:
		year += 1900
	case year >= 0 && year <= 69:
		year += 2000
	}

	if day < 1 || day > 31 || year < 1601 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	t = time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.After(endOfTime) {
		t = endOfTime
	}
	return t, true
}

func monthIndex(abbrev string) int {
	abbrev = strings.ToLower(abbrev)
	for i, m := range monthAbbrevs {
		if m == abbrev {
			return i
		}
	}
	return -1
}
