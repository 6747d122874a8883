package filters

import (
	"github.com/yukikurage/scrum-board-api/internal/models"
	"gorm.io/gorm"
)

// Bound is the comparison used by a date bound filter.
type Bound string

const (
	Min Bound = ">="
	Max Bound = "<="
)

// DateBound keeps items whose date is on or after (Min) or on or before (Max)
// the given YYYY-MM-DD date. Two bounds on the same column form a closed range.
func DateBound[T any](param, column string, bound Bound, get func(T) (models.Date, bool)) Filter[T] {
	return funcFilter[T]{
		name: param,
		bind: func(value string) (Clause[T], error) {
			limit, err := models.ParseDate(value)
			if err != nil {
				return Clause[T]{}, err
			}
			return Clause[T]{
				Param: param,
				Value: value,
				Match: func(item T) bool {
					got, ok := get(item)
					if !ok {
						return false
					}
					if bound == Min {
						return !got.Before(limit)
					}
					return !got.After(limit)
				},
				Scope: func(db *gorm.DB) *gorm.DB {
					return db.Where(column+" "+string(bound)+" ?", limit)
				},
			}, nil
		},
	}
}
