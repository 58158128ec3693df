// Package pagination resolves the start/end query parameters of list
// endpoints into a bounds-safe index range.
//
// Resolution happens in two steps: Resolve validates the raw parameters and
// builds a Range with start <= end, then Clamp fits that range to the length
// of the concrete collection being paged. Page slices a clamped range.
//
// All functions are pure.
package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	ParamStart = "start"
	ParamEnd   = "end"
)

var (
	// ErrMissingParameters is returned when the query is non-empty but lacks
	// start or end.
	ErrMissingParameters = errors.New("missing parameter")

	// ErrInvalidParameters is returned when start > end, or when start lies
	// beyond the end of the collection after clamping.
	ErrInvalidParameters = errors.New("start must not be greater than end")

	errNegative = errors.New("value must be non-negative")
)

// ParseError reports a parameter value that is not a non-negative integer.
type ParseError struct {
	Param string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse parameter %s=%q: %v", e.Param, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Range is a half-open index range [Start, End). Start <= End always holds
// for values produced by this package.
type Range struct {
	Start int
	End   int
}

// New builds a Range, rejecting start > end with ErrInvalidParameters.
func New(start, end int) (Range, error) {
	if start < 0 || end < 0 || start > end {
		return Range{}, ErrInvalidParameters
	}
	return Range{Start: start, End: end}, nil
}

// Len returns the number of indices covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Resolve extracts start/end from params.
//
// The boolean result is false only when params is empty: pagination was not
// requested and callers should return the full collection. Any non-empty
// params must carry both start and end, otherwise ErrMissingParameters is
// returned. Keys other than start and end are ignored once both are present.
func Resolve(params map[string]string) (Range, bool, error) {
	if len(params) == 0 {
		return Range{}, false, nil
	}

	rawStart, hasStart := params[ParamStart]
	rawEnd, hasEnd := params[ParamEnd]
	if !hasStart || !hasEnd {
		return Range{}, true, ErrMissingParameters
	}

	start, err := parseIndex(ParamStart, rawStart)
	if err != nil {
		return Range{}, true, err
	}
	end, err := parseIndex(ParamEnd, rawEnd)
	if err != nil {
		return Range{}, true, err
	}

	r, err := New(start, end)
	return r, true, err
}

// Clamp lowers r.End to length when it exceeds it. A Start beyond length
// cannot be satisfied and yields ErrInvalidParameters; Start == length is an
// empty page.
func Clamp(r Range, length int) (Range, error) {
	if r.End > length {
		r.End = length
	}
	if r.Start > r.End {
		return Range{}, fmt.Errorf("%w: start %d is beyond %d items", ErrInvalidParameters, r.Start, length)
	}
	return r, nil
}

// Page returns items[r.Start:r.End]. r must already be clamped to len(items).
func Page[T any](items []T, r Range) []T {
	return items[r.Start:r.End]
}

// FromQuery flattens url.Values to the first value of each key.
func FromQuery(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, vv := range q {
		if len(vv) > 0 {
			out[k] = vv[0]
		} else {
			out[k] = ""
		}
	}
	return out
}

func parseIndex(param, raw string) (int, error) {
	if strings.HasPrefix(raw, "-") {
		return 0, &ParseError{Param: param, Value: raw, Err: errNegative}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Param: param, Value: raw, Err: err}
	}
	return n, nil
}
