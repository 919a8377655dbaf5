package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrInvalidPattern is returned when Postgres rejects a search pattern.
var ErrInvalidPattern = errors.New("invalid regular expression")

// invalidRegexCode is the SQLSTATE for invalid_regular_expression.
const invalidRegexCode pq.ErrorCode = "2201B"

func searchError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == invalidRegexCode {
		return fmt.Errorf("%w: %s", ErrInvalidPattern, pqErr.Message)
	}
	return err
}
