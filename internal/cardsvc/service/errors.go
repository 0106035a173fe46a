package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrWrongPassword means the card exists but the supplied password does
// not match the stored one.
var ErrWrongPassword = errors.New("service: incorrect password")

// ValidationError lists the required create fields that were empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Missing, ", "))
}
