package filters

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const likeEscape = "!"

// Search matches ?search= terms against a fixed set of columns. Every term
// must be contained, case-insensitively, in at least one of the columns.
type Search struct {
	Columns []string
}

// Terms splits the query on whitespace and commas.
func (s Search) Terms(query string) []string {
	return strings.FieldsFunc(query, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// Scope restricts a query to rows matching every term. An empty query is a no-op.
func (s Search) Scope(query string) Scope {
	terms := s.Terms(query)
	return func(db *gorm.DB) *gorm.DB {
		if len(s.Columns) == 0 {
			return db
		}
		for _, term := range terms {
			pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
			conds := make([]string, len(s.Columns))
			args := make([]any, len(s.Columns))
			for i, column := range s.Columns {
				conds[i] = "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
				args[i] = pattern
			}
			db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		return db
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}
