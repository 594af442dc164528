package timeline

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"wallfeed/internal/models"
)

// One pattern per separator; mixed separators are not dates.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`),
	regexp.MustCompile(`^(\d{4})/(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])$`),
}

// parseDate accepts YYYY-MM-DD or YYYY/MM/DD naming a real calendar day.
// The date is read in loc and returned in UTC.
func parseDate(segment string, loc *time.Location) (time.Time, bool) {
	var m []string
	for _, re := range datePatterns {
		if m = re.FindStringSubmatch(segment); m != nil {
			break
		}
	}
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", m[1]+"-"+m[2]+"-"+m[3], loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParseFilters reads filters from the path segments following the
// "/profile/{nickname}/status" prefix and from the query string. It never
// fails: segments that do not parse as dates are category tokens.
func ParseFilters(segments []string, query url.Values, loc *time.Location) models.FilterSet {
	if loc == nil {
		loc = time.UTC
	}

	var fs models.FilterSet
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if d, ok := parseDate(seg, loc); ok {
			if fs.DateFrom == nil {
				fs.DateFrom, fs.RawDateFrom = &d, seg
			} else {
				fs.DateTo, fs.RawDateTo = &d, seg
			}
			continue
		}
		fs.Category = seg
	}

	if fs.Category == "" {
		fs.Category = strings.TrimSpace(query.Get("category"))
	}
	fs.Hashtags = strings.TrimSpace(query.Get("tag"))

	return fs
}
