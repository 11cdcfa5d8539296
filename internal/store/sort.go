package store

import "strings"

// DefaultSortField is used when the requested field is empty or unknown.
const DefaultSortField = "availability"

// SortSpec is a validated ORDER BY term. Column is always one of the known
// server columns, so it is safe to hand to the query builder.
type SortSpec struct {
	Field  string
	Column string
	Desc   bool
}

var sortColumns = map[string]string{
	"id":           "server_id",
	"serverid":     "server_id",
	"server_id":    "server_id",
	"firstname":    "first_name",
	"first_name":   "first_name",
	"lastname":     "last_name",
	"last_name":    "last_name",
	"availability": "availability",
}

var columnFields = map[string]string{
	"server_id":    "id",
	"first_name":   "firstName",
	"last_name":    "lastName",
	"availability": "availability",
}

// ResolveSort maps a requested field and order onto a SortSpec. Unknown
// fields fall back to availability; any order other than asc sorts
// descending.
func ResolveSort(field, order string) SortSpec {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		column = sortColumns[DefaultSortField]
	}
	return SortSpec{
		Field:  columnFields[column],
		Column: column,
		Desc:   !strings.EqualFold(strings.TrimSpace(order), "asc"),
	}
}
