package clvalue

import (
	"fmt"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// EncodingError reports a value that cannot be represented in its declared type
type EncodingError struct {
	Arg    string
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("encoding error: %s", e.Reason)
	}
	return fmt.Sprintf("encoding error in argument %q: %s", e.Arg, e.Reason)
}

func (e *EncodingError) Unwrap() error {
	return domain.ErrEncoding
}
