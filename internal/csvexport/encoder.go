// Package csvexport serialises in-memory record sets into CSV downloads.
//
// Quoting is deliberately narrower than encoding/csv: a field is quoted only
// when it contains a comma, a double quote or a newline. Rows are joined with
// "\n" and the output has no trailing newline.
package csvexport

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Column pairs a header label with the extractor producing that field.
// Extractors must tolerate absent relations and return nil for them.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Encode renders records in the given order. An empty record set yields "".
func Encode[T any](records []T, cols []Column[T]) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(c.Header))
	}
	for _, rec := range records {
		b.WriteByte('\n')
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(Format(c.Value(rec))))
		}
	}
	return b.String()
}

// Write streams the encoded records to w
func Write[T any](w io.Writer, records []T, cols []Column[T]) error {
	_, err := io.WriteString(w, Encode(records, cols))
	return err
}

// Headers returns the header labels of a column set
func Headers[T any](cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Escape quotes s when it contains a comma, a double quote or a newline
func Escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Format converts an extracted value to its display text. nil and nil
// pointers become "", slices are joined with ";".
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.String()
	case []string:
		return strings.Join(x, ";")
	case fmt.Stringer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return Format(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ""
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Format(rv.Index(i).Interface())
		}
		return strings.Join(parts, ";")
	default:
		return fmt.Sprint(v)
	}
}

// Filename builds "{entity}-export-{YYYY-MM-DD}.csv" using the UTC date
func Filename(entity string, now time.Time) string {
	return fmt.Sprintf("%s-export-%s.csv", entity, now.UTC().Format("2006-01-02"))
}
