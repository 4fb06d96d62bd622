package service

import (
	"strconv"
	"strings"

	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

func named(log *logger.Logger, component string) *logger.Logger {
	if log == nil {
		log = logger.NewNop()
	}
	return log.Named(component)
}

// exportPageSize is the page size used when walking a paginated list for export
const exportPageSize = 100

// maxExportPages bounds a full-roster export walk
const maxExportPages = 200

// errExportTooLarge is returned instead of a silently truncated export
func errExportTooLarge(what string, pages int) error {
	return errors.NewValidationError("Too many "+what+" to export, narrow the filters", map[string]interface{}{
		"maxRows":    maxExportPages * exportPageSize,
		"totalPages": pages,
	})
}

func itoa(n int) string { return strconv.Itoa(n) }

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
