// Package dxf provides a reader for ASCII DXF drawings. It consumes the
// tagged group-code/value stream and materializes the ENTITIES section
// into the domain entity model.
package dxf

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"plancost/core/geometry"
	"plancost/core/types"
	"plancost/internal/errors"
)

// tag is one group-code/value pair from the DXF stream
type tag struct {
	code  int
	value string
}

// Reader parses DXF files into Drawing documents
type Reader struct{}

// NewReader creates a DXF reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the DXF file at path
func (r *Reader) Read(path string) (*types.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Parse("cannot open drawing", err).WithContext("path", path)
	}
	defer f.Close()

	drawing, err := r.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	drawing.Path = path
	return drawing, nil
}

// ReadFrom parses DXF content from a stream
func (r *Reader) ReadFrom(src io.Reader) (*types.Drawing, error) {
	tr := newTagReader(src)
	drawing := &types.Drawing{}
	sawEOF := false

	for {
		t, err := tr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parse("malformed tag stream", err)
		}
		if t.code != 0 {
			continue
		}
		switch t.value {
		case "EOF":
			sawEOF = true
		case "SECTION":
			name, err := tr.sectionName()
			if err != nil {
				return nil, errors.Parse("unterminated section header", err)
			}
			switch name {
			case "HEADER":
				version, err := readHeader(tr)
				if err != nil {
					return nil, err
				}
				drawing.Version = version
			case "ENTITIES":
				entities, err := readEntities(tr)
				if err != nil {
					return nil, err
				}
				drawing.Entities = entities
			default:
				if err := skipSection(tr); err != nil {
					return nil, err
				}
			}
		}
	}

	if !sawEOF {
		return nil, errors.Parse("missing EOF marker", nil)
	}
	return drawing, nil
}

// tagReader reads group-code/value pairs with one-tag pushback
type tagReader struct {
	scanner *bufio.Scanner
	pushed  *tag
}

func newTagReader(src io.Reader) *tagReader {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tagReader{scanner: sc}
}

func (tr *tagReader) next() (tag, error) {
	if tr.pushed != nil {
		t := *tr.pushed
		tr.pushed = nil
		return t, nil
	}
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return tag{}, err
		}
		return tag{}, io.EOF
	}
	codeLine := strings.TrimSpace(tr.scanner.Text())
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return tag{}, err
		}
		return tag{}, errors.Newf(errors.TypeParse, "dangling group code %q", codeLine)
	}
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return tag{}, errors.Newf(errors.TypeParse, "invalid group code %q", codeLine)
	}
	return tag{code: code, value: strings.TrimSpace(tr.scanner.Text())}, nil
}

func (tr *tagReader) unread(t tag) {
	tr.pushed = &t
}

// sectionName reads the group 2 tag following a SECTION marker
func (tr *tagReader) sectionName() (string, error) {
	for {
		t, err := tr.next()
		if err != nil {
			return "", err
		}
		if t.code == 2 {
			return t.value, nil
		}
		if t.code == 0 {
			tr.unread(t)
			return "", nil
		}
	}
}

// readHeader scans the HEADER section for the $ACADVER variable
func readHeader(tr *tagReader) (string, error) {
	version := ""
	inVersion := false
	for {
		t, err := tr.next()
		if err == io.EOF {
			return version, nil
		}
		if err != nil {
			return "", errors.Parse("malformed header section", err)
		}
		if t.code == 0 && t.value == "ENDSEC" {
			return version, nil
		}
		if t.code == 9 {
			inVersion = t.value == "$ACADVER"
			continue
		}
		if inVersion && (t.code == 1 || t.code == 3) {
			version = t.value
			inVersion = false
		}
	}
}

// skipSection consumes tags until the matching ENDSEC
func skipSection(tr *tagReader) error {
	for {
		t, err := tr.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Parse("malformed section", err)
		}
		if t.code == 0 && t.value == "ENDSEC" {
			return nil
		}
	}
}

// readEntities parses the ENTITIES section in file order
func readEntities(tr *tagReader) ([]types.Entity, error) {
	var entities []types.Entity
	for {
		t, err := tr.next()
		if err == io.EOF {
			return entities, nil
		}
		if err != nil {
			return nil, errors.Parse("malformed entities section", err)
		}
		if t.code != 0 {
			continue
		}
		if t.value == "ENDSEC" {
			return entities, nil
		}

		entity, ok := readEntity(tr, t.value)
		if ok {
			entities = append(entities, entity)
		}
	}
}

// readEntity collects the tags of one entity. Entities with unusable
// payloads are dropped, per-entity, without failing the parse.
func readEntity(tr *tagReader, kind string) (types.Entity, bool) {
	e := types.Entity{Kind: types.EntityKind(kind)}
	var xs, ys []float64
	var text, extra strings.Builder
	flags := 0
	flagsSeen := false
	bad := false
	// a POLYLINE header carries a mandatory dummy point; real vertices
	// only come from the VERTEX sub-entities that follow
	inVertex := false

	for {
		t, err := tr.next()
		if err != nil {
			break
		}
		if t.code == 0 {
			if e.Kind == types.EntityPolyline && t.value == "VERTEX" {
				// vertices belong to the enclosing POLYLINE
				inVertex = true
				continue
			}
			if e.Kind == types.EntityPolyline && t.value == "SEQEND" {
				break
			}
			tr.unread(t)
			break
		}

		switch t.code {
		case 10:
			if e.Kind == types.EntityPolyline && !inVertex {
				continue
			}
			v, err := strconv.ParseFloat(t.value, 64)
			if err != nil {
				bad = true
				continue
			}
			xs = append(xs, v)
		case 20:
			if e.Kind == types.EntityPolyline && !inVertex {
				continue
			}
			v, err := strconv.ParseFloat(t.value, 64)
			if err != nil {
				bad = true
				continue
			}
			ys = append(ys, v)
		case 40:
			v, err := strconv.ParseFloat(t.value, 64)
			if err != nil {
				bad = true
				continue
			}
			if e.Kind == types.EntityCircle {
				e.Radius = v
			}
		case 70:
			// the first 70 carries the entity flags; later ones are
			// per-vertex flags on old-style POLYLINEs
			if flagsSeen {
				continue
			}
			if v, err := strconv.Atoi(t.value); err == nil {
				flags = v
				flagsSeen = true
			}
		case 1:
			text.WriteString(t.value)
		case 3:
			// MTEXT continuation chunks precede the group 1 tail
			extra.WriteString(t.value)
		}
	}

	if bad {
		return types.Entity{}, false
	}

	switch e.Kind {
	case types.EntityLWPolyline, types.EntityPolyline, types.EntitySpline:
		e.Points = zipPoints(xs, ys)
		e.Closed = e.Kind == types.EntitySpline || flags&1 != 0
	case types.EntityCircle:
		if len(xs) > 0 && len(ys) > 0 {
			e.Center = geometry.Point{X: xs[0], Y: ys[0]}
		}
	case types.EntityLine:
		e.Points = zipPoints(xs, ys)
	case types.EntityText, types.EntityMText:
		if len(xs) == 0 || len(ys) == 0 {
			return types.Entity{}, false
		}
		e.Anchor = geometry.Point{X: xs[0], Y: ys[0]}
		raw := extra.String() + text.String()
		if e.Kind == types.EntityMText {
			raw = StripMTextCodes(raw)
		}
		e.Text = raw
	}
	return e, true
}

// zipPoints pairs x and y ordinates in arrival order
func zipPoints(xs, ys []float64) []geometry.Point {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make([]geometry.Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, geometry.Point{X: xs[i], Y: ys[i]})
	}
	return pts
}
