package models

import "time"

type FilterSet struct {
	Category string
	Hashtags string
	DateFrom *time.Time
	DateTo   *time.Time

	// Raw date segments as they appeared in the path.
	RawDateFrom string
	RawDateTo   string
}

func (f FilterSet) IsEmpty() bool {
	return f.Category == "" && f.Hashtags == "" && f.DateFrom == nil && f.DateTo == nil
}
