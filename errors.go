package vlcframe

import "errors"

var (
	// ErrLocatorEmpty is returned by Start when no locator was configured.
	ErrLocatorEmpty = errors.New("media locator is empty")

	// ErrInvalidMediaType is returned by Start when the media type is out of range.
	ErrInvalidMediaType = errors.New("invalid media type")

	// ErrInternal wraps failures of the playback engine itself.
	ErrInternal = errors.New("playback engine error")

	// ErrMediaOpen is returned by Start when the media object could not be created.
	ErrMediaOpen = errors.New("unable to open media")

	// ErrAlreadyStarted is returned by Start on a player that was not stopped.
	ErrAlreadyStarted = errors.New("player already started")

	// ErrNotSupported is returned when the engine is not available on this platform.
	ErrNotSupported = errors.New("operation not supported")
)

// Code is the numeric result of Start.
type Code int

const (
	CodeSuccess Code = iota
	CodeLocatorEmpty
	CodeInvalidMediaType
	CodeInternal
	CodeMediaOpen
)

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeLocatorEmpty:
		return "locator empty"
	case CodeInvalidMediaType:
		return "invalid media type"
	case CodeInternal:
		return "internal engine error"
	case CodeMediaOpen:
		return "media open error"
	default:
		return "unknown"
	}
}

// CodeOf maps an error returned by Start to its Code.
// Errors that do not wrap one of the package sentinels map to CodeInternal.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrLocatorEmpty):
		return CodeLocatorEmpty
	case errors.Is(err, ErrInvalidMediaType):
		return CodeInvalidMediaType
	case errors.Is(err, ErrMediaOpen):
		return CodeMediaOpen
	default:
		return CodeInternal
	}
}
