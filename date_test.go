package cookiejar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in   string
		want time.Time
	}{
		{"Tue, 07 Jun 2011 10:18:14 GMT", time.Date(2011, 6, 7, 10, 18, 14, 0, time.UTC)},
		{"07-Jun-2011 10:18:14", time.Date(2011, 6, 7, 10, 18, 14, 0, time.UTC)},
		{"tue, 07 jun 2011 10:18:14 gmt", time.Date(2011, 6, 7, 10, 18, 14, 0, time.UTC)},
		// asctime ordering, year last
		{"Thu Jan 1 10:00:00 2037", time.Date(2037, 1, 1, 10, 0, 0, 0, time.UTC)},
		// month given as full name, matched by 3-letter prefix
		{"5 January 2020 10:10:10", time.Date(2020, 1, 5, 10, 10, 10, 0, time.UTC)},
		// single-digit time fields
		{"7 Jun 2011 1:2:3", time.Date(2011, 6, 7, 1, 2, 3, 0, time.UTC)},
		// two-digit year heuristic
		{"Sat, 01-Jan-70 00:00:01 GMT", time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)},
		{"Sat, 01-Jan-99 00:00:01 GMT", time.Date(1999, 1, 1, 0, 0, 1, 0, time.UTC)},
		{"Sat, 01-Jan-69 00:00:01 GMT", time.Date(2069, 1, 1, 0, 0, 1, 0, time.UTC)},
		{"Sat, 01-Jan-00 00:00:01 GMT", time.Date(2000, 1, 1, 0, 0, 1, 0, time.UTC)},
	}
	for _, tc := range testCases {
		got, ok := parseDate(tc.in)
		assert.True(t, ok, "parseDate(%q)", tc.in)
		assert.Equal(t, tc.want, got, "parseDate(%q)", tc.in)
	}
}

func TestParseDateInvalid(t *testing.T) {
	t.Parallel()
	testCases := []string{
		"",
		"GMT",
		"Tue, 07 Jun 2011",          // no time
		"Tue, Jun 2011 10:18:14",    // no day
		"Tue, 07 2011 10:18:14",     // no month
		"Tue, 07 Jun 10:18:14",      // no year
		"Tue, 32 Jun 2011 10:18:14", // day out of range
		"Tue, 00 Jun 2011 10:18:14", // day out of range
		"Tue, 07 Jun 1600 10:18:14", // year below 1601
		"Tue, 07 Jun 2011 24:18:14", // hour out of range
		"Tue, 07 Jun 2011 10:60:14", // minute out of range
		"Tue, 07 Jun 2011 10:18:60", // second out of range
		"77, 07 Jun 2011 10:18:14",  // first number consumes the day slot
	}
	for _, in := range testCases {
		_, ok := parseDate(in)
		assert.False(t, ok, "parseDate(%q)", in)
	}
}

func TestParseDateEachTokenConsumedOnce(t *testing.T) {
	t.Parallel()
	// the second year-looking token is ignored once the year is found
	got, ok := parseDate("07 Jun 2011 2012 10:18:14")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2011, 6, 7, 10, 18, 14, 0, time.UTC), got)

	// colon keeps hh:mm:ss a single token; the day may come after it
	got, ok = parseDate("10:18:14 07 Jun 2011")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2011, 6, 7, 10, 18, 14, 0, time.UTC), got)
}

func TestParseDateClampsToCeiling(t *testing.T) {
	t.Parallel()
	got, ok := parseDate("07 Jun 9999 10:18:14")
	assert.True(t, ok)
	assert.False(t, got.After(endOfTime))
}
