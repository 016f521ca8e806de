package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// InsertModels renders a multi-row INSERT from structs tagged with `db:"column"`.
// suffix (ON CONFLICT ..., RETURNING ...) is appended verbatim.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, errors.New("insert: no table")
	}
	if len(models) == 0 {
		return "", nil, errors.New("insert: no rows")
	}

	var (
		sb      strings.Builder
		b       binder
		columns []string
	)
	for i, model := range models {
		cols, vals, err := dbFields(model)
		if err != nil {
			return "", nil, fmt.Errorf("insert row %d: %w", i, err)
		}
		if i == 0 {
			columns = cols
			sb.WriteString("INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES ")
		} else {
			sb.WriteString(", ")
		}

		placeholders := make([]string, len(vals))
		for j, v := range vals {
			placeholders[j] = b.bind(v)
		}
		sb.WriteString("(" + strings.Join(placeholders, ", ") + ")")
	}

	if suffix = strings.TrimSpace(suffix); suffix != "" {
		sb.WriteString(" " + suffix)
	}
	return sb.String(), b.values, nil
}

// dbFields reads exported db-tagged fields in declaration order.
func dbFields(model any) ([]string, []any, error) {
	v := reflect.Indirect(reflect.ValueOf(model))
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %T", model)
	}

	t := v.Type()
	var (
		cols []string
		vals []any
	)
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("%s has no db columns", t.Name())
	}
	return cols, vals, nil
}
