// Package querybuilder renders the small set of postgres statements the archive needs.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// binder numbers bind values as $1, $2, ... in the order they are added.
type binder struct {
	values []any
}

func (b *binder) bind(v any) string {
	b.values = append(b.values, v)
	return "$" + strconv.Itoa(len(b.values))
}

// Condition renders one predicate; conditions are joined with AND.
type Condition func(b *binder) string

func Eq(column string, value any) Condition {
	return func(b *binder) string {
		return column + " = " + b.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(*binder) string {
		return column + " IS NULL"
	}
}

func renderWhere(sb *strings.Builder, conditions []Condition, b *binder) {
	for i, cond := range conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(cond(b))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, terms...)
	return s
}

func (s *SelectBuilder) Limit(n int) *SelectBuilder {
	s.limit = n
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(s.columns) == 0:
		return "", nil, errors.New("select: no columns")
	case strings.TrimSpace(s.table) == "":
		return "", nil, errors.New("select: no table")
	}

	var (
		sb strings.Builder
		b  binder
	)
	sb.WriteString("SELECT " + strings.Join(s.columns, ", ") + " FROM " + s.table)
	renderWhere(&sb, s.where, &b)
	if len(s.orderBy) > 0 {
		sb.WriteString(" ORDER BY " + strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(s.limit))
	}
	return sb.String(), b.values, nil
}

type assignment struct {
	column string
	value  any
	raw    string
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set binds value to column.
func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, value: value})
	return u
}

// SetRaw writes sql verbatim as the new value, e.g. NOW().
func (u *UpdateBuilder) SetRaw(column, sql string) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, raw: sql})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(u.table) == "":
		return "", nil, errors.New("update: no table")
	case len(u.sets) == 0:
		return "", nil, errors.New("update: nothing to set")
	}

	var (
		sb strings.Builder
		b  binder
	)
	sb.WriteString("UPDATE " + u.table + " SET ")
	for i, set := range u.sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(set.column + " = ")
		if set.raw != "" {
			sb.WriteString(set.raw)
		} else {
			sb.WriteString(b.bind(set.value))
		}
	}
	renderWhere(&sb, u.where, &b)
	return sb.String(), b.values, nil
}
