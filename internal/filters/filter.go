// Package filters turns query string parameters into restrictions over a
// collection. Each active parameter becomes a Clause holding a pure predicate
// and the equivalent GORM scope; clauses are combined with AND.
package filters

import (
	"fmt"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// Scope is a GORM scope function.
type Scope = func(*gorm.DB) *gorm.DB

// Clause is one bound filter parameter.
type Clause[T any] struct {
	Param string
	Value string
	Match func(T) bool
	Scope Scope
}

// Filter binds a raw parameter value to a Clause.
type Filter[T any] interface {
	Name() string
	Bind(value string) (Clause[T], error)
}

// Error reports a malformed value for a known filter parameter.
type Error struct {
	Param string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Param, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FilterSet is the list of filters accepted by one collection.
type FilterSet[T any] []Filter[T]

// Parse binds every filter whose parameter is present and non-empty.
// Parameters the set does not know about are ignored.
func (fs FilterSet[T]) Parse(params url.Values) (Clauses[T], error) {
	var clauses Clauses[T]
	for _, f := range fs {
		value := params.Get(f.Name())
		if value == "" {
			continue
		}
		clause, err := f.Bind(value)
		if err != nil {
			return nil, &Error{Param: f.Name(), Err: err}
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// Clauses is the conjunction of bound filters.
type Clauses[T any] []Clause[T]

// Match reports whether item satisfies every clause.
func (cs Clauses[T]) Match(item T) bool {
	for _, c := range cs {
		if !c.Match(item) {
			return false
		}
	}
	return true
}

// Apply returns the items matching every clause, preserving order.
func (cs Clauses[T]) Apply(items []T) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if cs.Match(item) {
			result = append(result, item)
		}
	}
	return result
}

// Scopes returns the GORM scopes of every clause.
func (cs Clauses[T]) Scopes() []Scope {
	scopes := make([]Scope, len(cs))
	for i, c := range cs {
		scopes[i] = c.Scope
	}
	return scopes
}

// Value returns the raw value bound to param.
func (cs Clauses[T]) Value(param string) (string, bool) {
	for _, c := range cs {
		if c.Param == param {
			return c.Value, true
		}
	}
	return "", false
}

type funcFilter[T any] struct {
	name string
	bind func(value string) (Clause[T], error)
}

func (f funcFilter[T]) Name() string {
	return f.name
}

func (f funcFilter[T]) Bind(value string) (Clause[T], error) {
	return f.bind(value)
}

// Exact matches items whose field equals the parsed value. get reports false
// when the field is unset, which never matches.
func Exact[T any, V comparable](param, column string, parse func(string) (V, error), get func(T) (V, bool)) Filter[T] {
	return funcFilter[T]{
		name: param,
		bind: func(value string) (Clause[T], error) {
			want, err := parse(value)
			if err != nil {
				return Clause[T]{}, err
			}
			return Clause[T]{
				Param: param,
				Value: value,
				Match: func(item T) bool {
					got, ok := get(item)
					return ok && got == want
				},
				Scope: func(db *gorm.DB) *gorm.DB {
					return db.Where(column+" = ?", want)
				},
			}, nil
		},
	}
}

// IsNull filters on whether a nullable field is set. A true value keeps items
// where the field is null, false keeps items where it is not.
func IsNull[T any](param, column string, isNull func(T) bool) Filter[T] {
	return funcFilter[T]{
		name: param,
		bind: func(value string) (Clause[T], error) {
			want, err := strconv.ParseBool(value)
			if err != nil {
				return Clause[T]{}, fmt.Errorf("%q is not a boolean", value)
			}
			return Clause[T]{
				Param: param,
				Value: value,
				Match: func(item T) bool {
					return isNull(item) == want
				},
				Scope: func(db *gorm.DB) *gorm.DB {
					if want {
						return db.Where(column + " IS NULL")
					}
					return db.Where(column + " IS NOT NULL")
				},
			}, nil
		},
	}
}

// Related matches items whose foreign key points at a row of table whose
// field equals the value, so callers filter by a natural key instead of an id.
func Related[T any](param, column, table, field string, get func(T) (string, bool)) Filter[T] {
	return funcFilter[T]{
		name: param,
		bind: func(value string) (Clause[T], error) {
			return Clause[T]{
				Param: param,
				Value: value,
				Match: func(item T) bool {
					got, ok := get(item)
					return ok && got == value
				},
				Scope: func(db *gorm.DB) *gorm.DB {
					ids := db.Session(&gorm.Session{NewDB: true}).
						Table(table).
						Select("id").
						Where(field+" = ?", value)
					return db.Where(column+" IN (?)", ids)
				},
			}, nil
		},
	}
}

// ParseID parses an unsigned numeric identifier.
func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}
