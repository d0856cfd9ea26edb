package pages

import (
	"fmt"
	"strconv"
	"strings"
)

// validationError is a form problem shown to the user as is
type validationError string

func (e validationError) Error() string {
	return string(e)
}

// optionalInt parses an id field. Blank means unset.
func optionalInt(field string, value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", field, value)
	}
	return &n, nil
}

func optionalFloat(field string, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", field, value)
	}
	return &f, nil
}
