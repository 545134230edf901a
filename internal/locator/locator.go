// Package locator binds input-device tools to the interactive analysis tools
// that edit clipping planes and the flashlight.
package locator

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ToolID identifies one device tool for its whole lifetime.
type ToolID uint32

// Kind describes the capability a tool exposes.
type Kind int

const (
	// KindButton tools only report button presses; they never get a locator.
	KindButton Kind = iota
	// KindLocator tools report a 6-DOF pose and one button.
	KindLocator
)

// Pointing reports whether tools of this kind have a pose.
func (k Kind) Pointing() bool {
	return k == KindLocator
}

// ToolEvent is delivered when a device tool is created.
type ToolEvent struct {
	ID   ToolID
	Kind Kind
	Name string
}

// Pose is a device position and orientation in model coordinates.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewPose builds a pose at position looking along dir.
func NewPose(position, dir mgl32.Vec3) Pose {
	if dir.Len() == 0 {
		return Pose{Position: position, Orientation: mgl32.QuatIdent()}
	}
	return Pose{
		Position:    position,
		Orientation: mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, -1}, dir.Normalize()),
	}
}

// Forward returns the device's pointing axis (-Z rotated by the orientation).
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation.Normalize().Rotate(mgl32.Vec3{0, 0, -1})
}

// Mode is the analysis tool applied to newly created locators.
type Mode int

const (
	ModeClippingPlane Mode = iota
	ModeFlashlight
)

func (m Mode) String() string {
	switch m {
	case ModeClippingPlane:
		return "clipping-plane"
	case ModeFlashlight:
		return "flashlight"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "clipping-plane" or "flashlight".
func ParseMode(s string) (Mode, error) {
	switch strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s))) {
	case "clipping-plane", "clip", "clipping":
		return ModeClippingPlane, nil
	case "flashlight", "light":
		return ModeFlashlight, nil
	}
	return ModeClippingPlane, fmt.Errorf("unknown analysis tool %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Locator reacts to the pose and button events of the tool it is bound to.
type Locator interface {
	ButtonPress(p Pose)
	ButtonRelease(p Pose)
	Motion(p Pose)
	Tool() ToolID
	// Detach releases whatever shared state the locator holds. Repeated calls are no-ops.
	Detach()
	// Inert reports whether the locator could not claim its shared state.
	Inert() bool
}
