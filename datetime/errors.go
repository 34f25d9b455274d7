package datetime

import "github.com/pkg/errors"

// Errors returned by the package.
var (
	ErrEmptyPattern        = errors.New("pattern cannot be null or empty")
	ErrNoFormatToken       = errors.New("must contain at least one format token in order to be processed by Slack correctly")
	ErrUnknownToken        = errors.New("no format token value matching")
	ErrUnsupportedTemporal = errors.New("unsupported temporal value")
	ErrInvalidLink         = errors.New("link is malformed")
)
