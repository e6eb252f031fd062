package pathcodec

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnrecognizedCharacter indicates a path character outside both alphabets.
	ErrUnrecognizedCharacter = errors.New("pathcodec: unrecognized path character")
	// ErrUnencodableAngle indicates an angle that matches no path character.
	ErrUnencodableAngle = errors.New("pathcodec: angle has no path character")
)

// FormatError reports the first character Expand could not decode.
// Pos is the 0-based rune position in the input.
type FormatError struct {
	Char rune
	Pos  int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pathcodec: unrecognized path character %q at position %d", e.Char, e.Pos)
}

func (e *FormatError) Unwrap() error { return ErrUnrecognizedCharacter }

// AngleError reports the first tile Collapse could not encode.
// Floor is 1-based; Angle is the normalized value that failed.
type AngleError struct {
	Floor int
	Angle float64
}

func (e *AngleError) Error() string {
	return fmt.Sprintf("pathcodec: floor #%d: angle %s° has no path character",
		e.Floor, strconv.FormatFloat(e.Angle, 'f', -1, 64))
}

func (e *AngleError) Unwrap() error { return ErrUnencodableAngle }
