package level

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded level. Exactly one of PathData / AngleData is
// meaningful, as reported by Format.
type Document struct {
	PathData  string
	AngleData []float64

	format Format
	// rest holds every other top-level key verbatim.
	rest map[string]json.RawMessage
}

// NewLegacy builds a legacy document around path.
func NewLegacy(path string) *Document {
	return &Document{PathData: path, format: Legacy, rest: map[string]json.RawMessage{}}
}

// NewMesh builds a mesh document around angles.
func NewMesh(angles []float64) *Document {
	return &Document{AngleData: angles, format: Mesh, rest: map[string]json.RawMessage{}}
}

// Format reports which encoding the track uses.
func (d *Document) Format() Format { return d.format }

// Len returns the number of tiles in the track.
func (d *Document) Len() int {
	if d.format == Mesh {
		return len(d.AngleData)
	}
	return utf8.RuneCountInString(d.PathData)
}

// Extra returns the raw JSON of a non-track key.
func (d *Document) Extra(key string) (json.RawMessage, bool) {
	v, ok := d.rest[key]
	return v, ok
}

// SetExtra stores raw JSON under a non-track key.
func (d *Document) SetExtra(key string, raw json.RawMessage) {
	if d.rest == nil {
		d.rest = map[string]json.RawMessage{}
	}
	d.rest[key] = raw
}

// Decode reads one level document from r.
//
// A document is Legacy when it has pathData and no angleData; otherwise
// it is Mesh. Documents with neither key fail with ErrNoTrack.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("level: read: %w", err)
	}
	data = relax(bytes.TrimPrefix(data, utf8BOM))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("level: parse: %w", err)
	}

	doc := &Document{rest: fields}
	rawAngles, hasAngles := fields[KeyAngleData]
	rawPath, hasPath := fields[KeyPathData]
	switch {
	case hasAngles:
		if err := json.Unmarshal(rawAngles, &doc.AngleData); err != nil {
			return nil, fmt.Errorf("level: parse %s: %w", KeyAngleData, err)
		}
		doc.format = Mesh
		delete(fields, KeyAngleData)
	case hasPath:
		if err := json.Unmarshal(rawPath, &doc.PathData); err != nil {
			return nil, fmt.Errorf("level: parse %s: %w", KeyPathData, err)
		}
		doc.format = Legacy
		delete(fields, KeyPathData)
	default:
		return nil, ErrNoTrack
	}

	return doc, nil
}

// Encode writes doc as indented JSON. Only the key of the current format
// is written; a stale key of the other format in rest is dropped.
func Encode(w io.Writer, doc *Document) error {
	out := make(map[string]any, len(doc.rest)+1)
	for k, v := range doc.rest {
		if k == KeyPathData || k == KeyAngleData {
			continue
		}
		out[k] = v
	}
	if doc.format == Mesh {
		angles := doc.AngleData
		if angles == nil {
			angles = []float64{}
		}
		out[KeyAngleData] = angles
	} else {
		out[KeyPathData] = doc.PathData
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("level: encode: %w", err)
	}
	return nil
}

// Load reads a level file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path through a temporary file in the same directory,
// so readers never observe a half-written level.
func Save(path string, doc *Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".floormesh-*")
	if err != nil {
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("level: save %s: %w", path, err)
	}

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("level: save %s: %w", path, err)
	}
	return nil
}

// relax removes commas that directly precede '}' or ']' outside strings.
func relax(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
		}
		if c == ',' && closesNext(data[i+1:]) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// closesNext reports whether the next non-space byte closes an object or array.
func closesNext(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
