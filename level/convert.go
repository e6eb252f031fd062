package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/katalvlaran/floormesh"
	"github.com/katalvlaran/floormesh/pathcodec"
)

// Convert returns a copy of doc with its track in the other format.
// doc itself is never modified.
//
//   - Mesh → Legacy: pathcodec.Collapse; an unencodable floor yields
//     *ConversionError wrapping the codec's *AngleError.
//   - Legacy → Mesh: pathcodec.Expand; a bad character yields the codec's
//     *FormatError wrapped with context.
func Convert(doc *Document) (*Document, error) {
	return ConvertTo(doc, doc.Format().Other())
}

// ConvertTo returns a copy of doc in the target format. A document already
// in that format is copied unchanged.
func ConvertTo(doc *Document, target Format) (*Document, error) {
	out := &Document{format: target, rest: maps.Clone(doc.rest)}
	if out.rest == nil {
		out.rest = map[string]json.RawMessage{}
	}

	switch {
	case doc.format == target:
		out.PathData = doc.PathData
		out.AngleData = append([]float64(nil), doc.AngleData...)
		return out, nil

	case target == Legacy:
		path, err := pathcodec.Collapse(doc.AngleData)
		if err != nil {
			var ae *pathcodec.AngleError
			if errors.As(err, &ae) {
				floormesh.Logger().Debug("collapse failed", "floor", ae.Floor, "angle", ae.Angle)
				return nil, &ConversionError{Floor: ae.Floor, Angle: ae.Angle, Err: err}
			}
			return nil, fmt.Errorf("level: collapse %s: %w", KeyAngleData, err)
		}
		out.PathData = path

	default:
		angles, err := pathcodec.Expand(doc.PathData)
		if err != nil {
			return nil, fmt.Errorf("level: expand %s: %w", KeyPathData, err)
		}
		out.AngleData = angles
	}

	floormesh.Logger().Debug("converted track", "from", doc.format, "to", target, "tiles", out.Len())
	return out, nil
}

// Verify checks that converted describes the same geometry as original.
// Both are expanded to angles and compared with pathcodec.Equivalent.
func Verify(original, converted *Document) (bool, error) {
	a, err := Angles(original)
	if err != nil {
		return false, err
	}
	b, err := Angles(converted)
	if err != nil {
		return false, err
	}
	return pathcodec.Equivalent(a, b), nil
}

// Angles returns the track of doc as mesh angles, expanding a legacy path.
func Angles(doc *Document) ([]float64, error) {
	if doc.format == Mesh {
		return doc.AngleData, nil
	}
	angles, err := pathcodec.Expand(doc.PathData)
	if err != nil {
		return nil, fmt.Errorf("level: expand %s: %w", KeyPathData, err)
	}
	return angles, nil
}
