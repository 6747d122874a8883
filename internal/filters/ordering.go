package filters

import (
	"strings"

	"gorm.io/gorm"
)

// Ordering maps ?ordering= field names to columns. Fields are comma
// separated and a leading "-" sorts descending. Unknown fields are dropped and
// Default applies when nothing valid remains. Tiebreak keeps pages stable.
type Ordering struct {
	Fields   map[string]string
	Default  string
	Tiebreak string
}

// Columns resolves param into ORDER BY terms.
func (o Ordering) Columns(param string) []string {
	var columns []string
	for _, field := range strings.Split(param, ",") {
		field = strings.TrimSpace(field)
		direction := " ASC"
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			direction = " DESC"
		}
		column, ok := o.Fields[field]
		if !ok {
			continue
		}
		columns = append(columns, column+direction)
	}

	if len(columns) == 0 && o.Default != "" {
		columns = append(columns, o.Default+" ASC")
	}
	if o.Tiebreak != "" && !hasColumn(columns, o.Tiebreak) {
		columns = append(columns, o.Tiebreak+" ASC")
	}
	return columns
}

// Scope applies the resolved ordering.
func (o Ordering) Scope(param string) Scope {
	columns := o.Columns(param)
	return func(db *gorm.DB) *gorm.DB {
		for _, column := range columns {
			db = db.Order(column)
		}
		return db
	}
}

func hasColumn(columns []string, column string) bool {
	for _, c := range columns {
		if strings.HasPrefix(c, column+" ") {
			return true
		}
	}
	return false
}
