package config

import (
	"errors"
	"fmt"
)

// MaxWindows bounds the number of render windows.
const MaxWindows = 8

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	d := c.Display
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, d.Width, d.Height)
	}
	if d.Windows < 1 || d.Windows > MaxWindows {
		return fmt.Errorf("%w: windows %d not in [1, %d]", ErrInvalid, d.Windows, MaxWindows)
	}

	a := c.Appearance
	if !a.Representation.Valid() {
		return fmt.Errorf("%w: representation %d", ErrInvalid, int(a.Representation))
	}
	if a.Opacity < 0 || a.Opacity > 1 {
		return fmt.Errorf("%w: opacity %v not in [0, 1]", ErrInvalid, a.Opacity)
	}
	if a.Intensity < 0 {
		return fmt.Errorf("%w: negative intensity %v", ErrInvalid, a.Intensity)
	}
	for name, col := range map[string][3]float32{"ambient": a.Ambient, "diffuse": a.Diffuse, "specular": a.Specular} {
		for _, v := range col {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: %s color %v", ErrInvalid, name, col)
			}
		}
	}

	if c.Tools.ClipPlanes < 1 {
		return fmt.Errorf("%w: clip_planes %d", ErrInvalid, c.Tools.ClipPlanes)
	}
	return nil
}
