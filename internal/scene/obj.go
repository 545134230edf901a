package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// objDecoder collects the parts of a Wavefront OBJ file the viewer uses:
// positions, normals and polygonal faces. Texture coordinates, materials and
// groups are skipped.
type objDecoder struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	mesh      *Mesh
	hasNormal bool
	line      int
	warnings  []string
}

// DecodeOBJ reads OBJ geometry from r. Polygons are fan-triangulated and
// faces without normals get smoothed face normals.
func DecodeOBJ(r io.Reader, name string) (*Mesh, []string, error) {
	dec := &objDecoder{
		mesh:      &Mesh{Name: name, Bounds: EmptyBounds()},
		hasNormal: true,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		dec.line++
		if err := dec.parseLine(scanner.Text()); err != nil {
			return nil, dec.warnings, fmt.Errorf("%s:%d: %w", name, dec.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, dec.warnings, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(dec.mesh.Indices) == 0 {
		return nil, dec.warnings, fmt.Errorf("%s: no faces", name)
	}
	if !dec.hasNormal {
		SmoothNormals(dec.mesh.Vertices)
	}
	return dec.mesh, dec.warnings, nil
}

func (dec *objDecoder) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		dec.positions = append(dec.positions, v)
	case "vn":
		n, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		dec.normals = append(dec.normals, n.Normalize())
	case "f":
		return dec.parseFace(fields[1:])
	case "vt", "vp", "o", "g", "s", "usemtl", "mtllib", "l", "p":
	default:
		dec.warnings = append(dec.warnings, fmt.Sprintf("line %d: unsupported statement %q", dec.line, fields[0]))
	}
	return nil
}

func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	type corner struct {
		pos    mgl32.Vec3
		normal mgl32.Vec3
		hasN   bool
	}
	corners := make([]corner, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, "/")
		vi, err := resolveIndex(parts[0], len(dec.positions))
		if err != nil {
			return fmt.Errorf("face vertex %q: %w", f, err)
		}
		c := corner{pos: dec.positions[vi]}
		if len(parts) == 3 && parts[2] != "" {
			ni, err := resolveIndex(parts[2], len(dec.normals))
			if err != nil {
				return fmt.Errorf("face normal %q: %w", f, err)
			}
			c.normal = dec.normals[ni]
			c.hasN = true
		}
		corners = append(corners, c)
	}

	faceNormal := corners[1].pos.Sub(corners[0].pos).Cross(corners[2].pos.Sub(corners[0].pos))
	if faceNormal.Len() > 0 {
		faceNormal = faceNormal.Normalize()
	}

	base := uint32(len(dec.mesh.Vertices))
	for _, c := range corners {
		n := c.normal
		if !c.hasN {
			n = faceNormal
			dec.hasNormal = false
		}
		dec.mesh.Vertices = append(dec.mesh.Vertices, Vertex{Position: c.pos, Normal: n})
		dec.mesh.Bounds.Extend(c.pos)
	}
	for i := 1; i+1 < len(corners); i++ {
		dec.mesh.Indices = append(dec.mesh.Indices, base, base+uint32(i), base+uint32(i+1))
	}
	return nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to 0-based.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d defined)", i, n)
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	if len(fields) < 3 {
		return mgl32.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mgl32.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
