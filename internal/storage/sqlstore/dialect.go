package sqlstore

import "strconv"

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name       string
	DriverName string
	ordinal    bool
}

var (
	SQLite   = Dialect{Name: "sqlite", DriverName: "sqlite"}
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", ordinal: true}
)

// Placeholder returns the bind marker for the n-th parameter, 1-based.
func (d Dialect) Placeholder(n int) string {
	if d.ordinal {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func DialectByName(name string) (Dialect, bool) {
	switch name {
	case SQLite.Name:
		return SQLite, true
	case Postgres.Name:
		return Postgres, true
	default:
		return Dialect{}, false
	}
}
