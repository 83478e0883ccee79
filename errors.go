package tzfinder

import "fmt"

// Kind classifies the errors the core can return, per the error handling
// design: query-time errors are limited to OutOfRange, everything else is
// either a constructor-time failure or absence (nil, not an error).
type Kind int

const (
	// KindOutOfRange means a longitude or latitude fell outside the valid
	// range accepted by the FixedPoint codec.
	KindOutOfRange Kind = iota
	// KindInvalidZoneName means a zone lookup by name found nothing.
	KindInvalidZoneName
	// KindInvalidZoneID means a zone lookup by ID was out of range.
	KindInvalidZoneID
	// KindInvalidBoundaryID means a boundary lookup by ID was out of range
	// (the supplemented zone_id_of/zone_name_from_boundary_id accessors).
	KindInvalidBoundaryID
	// KindDataCorrupt means an on-disk file failed structural validation.
	KindDataCorrupt
	// KindIOError means opening or reading a data file failed at the OS level.
	KindIOError
)

func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out of range"
	case KindInvalidZoneName:
		return "invalid zone name"
	case KindInvalidZoneID:
		return "invalid zone id"
	case KindInvalidBoundaryID:
		return "invalid boundary id"
	case KindDataCorrupt:
		return "data corrupt"
	case KindIOError:
		return "io error"
	default:
		return "unknown"
	}
}

// Error is the error type returned by this package. Kind lets callers
// switch on the failure class without parsing messages.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func outOfRangeErr(msg string) error {
	return newError(KindOutOfRange, msg, nil)
}

func dataCorruptErr(msg string) error {
	return newError(KindDataCorrupt, msg, nil)
}

func wrapDataCorrupt(msg string, err error) error {
	return newError(KindDataCorrupt, msg, err)
}

func ioErrorErr(msg string, err error) error {
	return newError(KindIOError, msg, err)
}

func invalidZoneNameErr(name string) error {
	return newError(KindInvalidZoneName, fmt.Sprintf("timezone %q does not exist", name), nil)
}

func invalidZoneIDErr(id int) error {
	return newError(KindInvalidZoneID, fmt.Sprintf("zone id %d is invalid", id), nil)
}

func invalidBoundaryIDErr(id int) error {
	return newError(KindInvalidBoundaryID, fmt.Sprintf("boundary id %d is invalid", id), nil)
}
