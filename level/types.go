package level

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// JSON keys holding the track.
const (
	KeyPathData  = "pathData"
	KeyAngleData = "angleData"
)

var (
	// ErrNoTrack indicates a document with neither pathData nor angleData.
	ErrNoTrack = errors.New("level: document has neither pathData nor angleData")
	// ErrUnknownFormat indicates an unrecognized format name.
	ErrUnknownFormat = errors.New("level: unknown format")
)

// Format names a track encoding.
type Format int

const (
	// Legacy stores the track as a path string.
	Legacy Format = iota
	// Mesh stores the track as an angle list.
	Mesh
)

// String returns "legacy" or "mesh".
func (f Format) String() string {
	if f == Mesh {
		return "mesh"
	}
	return "legacy"
}

// Other returns the opposite format.
func (f Format) Other() Format {
	if f == Mesh {
		return Legacy
	}
	return Mesh
}

// ParseFormat accepts "legacy" / "path" and "mesh" / "angle", any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy", "path":
		return Legacy, nil
	case "mesh", "angle":
		return Mesh, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ConversionError reports a mesh track that could not become legacy.
// Floor is 1-based; Angle is the normalized angle of that floor.
type ConversionError struct {
	Floor int
	Angle float64
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("level: conversion failed at floor #%d (%s°)",
		e.Floor, strconv.FormatFloat(e.Angle, 'f', -1, 64))
}

func (e *ConversionError) Unwrap() error { return e.Err }
