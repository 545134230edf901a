package appearance

import (
	"fmt"
	"strings"
)

// Representation selects how the mesh surface is drawn.
type Representation int

const (
	Points Representation = iota
	Wireframe
	Surface
	SurfaceWithEdges
)

var representationNames = [...]string{
	Points:           "points",
	Wireframe:        "wireframe",
	Surface:          "surface",
	SurfaceWithEdges: "surface-with-edges",
}

func (r Representation) String() string {
	if r < Points || r > SurfaceWithEdges {
		return fmt.Sprintf("Representation(%d)", int(r))
	}
	return representationNames[r]
}

// Valid reports whether r is one of the defined modes.
func (r Representation) Valid() bool {
	return r >= Points && r <= SurfaceWithEdges
}

// ShowEdges reports whether edges are overlaid on the surface.
func (r Representation) ShowEdges() bool {
	return r == SurfaceWithEdges
}

// ParseRepresentation accepts the names printed by String, case-insensitively.
// Underscores and spaces are accepted in place of dashes.
func ParseRepresentation(s string) (Representation, error) {
	norm := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range representationNames {
		if name == norm {
			return Representation(i), nil
		}
	}
	return Surface, fmt.Errorf("unknown representation %q", s)
}

// MarshalText implements encoding.TextMarshaler for config files.
func (r Representation) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid representation %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (r *Representation) UnmarshalText(text []byte) error {
	v, err := ParseRepresentation(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
