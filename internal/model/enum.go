package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrInvalidInput is returned when an input field is outside its declared
// domain. Callers match it with errors.Is.
var ErrInvalidInput = eris.New("invalid input")

// enum is implemented by every closed categorical type in this package.
type enum interface {
	~string
	Valid() bool
}

// parseEnum normalizes s and returns it as T when it names a known tag.
func parseEnum[T enum](field, s string) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return v, eris.Wrapf(ErrInvalidInput, "%s: unknown value %q", field, s)
	}
	return v, nil
}

// parseEnumList parses a comma-separated list of tags. Empty entries are skipped.
func parseEnumList[T enum](field, s string) ([]T, error) {
	var out []T
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parseEnum[T](field, part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func invalid(format string, args ...any) error {
	return eris.Wrapf(ErrInvalidInput, format, args...)
}
