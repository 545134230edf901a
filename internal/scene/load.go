package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/logger"
)

// Source selects the mesh shown at startup.
type Source struct {
	// File is an OBJ path. Empty means the default primitive.
	File string
	// Default allows falling back to the unit cube when File is empty.
	Default bool
}

// Load resolves src to a mesh. It fails with ErrNoSource when File is empty
// and the default primitive is disabled.
func Load(src Source) (*Mesh, error) {
	if src.File == "" {
		if !src.Default {
			return nil, ErrNoSource
		}
		logger.Info("no mesh file given, showing default cube")
		return Cube(), nil
	}
	return LoadFile(src.File)
}

// LoadFile reads an OBJ mesh from disk.
func LoadFile(path string) (*Mesh, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".obj" {
		return nil, fmt.Errorf("loading %s: unsupported mesh format %q", path, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}
	defer f.Close()

	mesh, warnings, err := DecodeOBJ(f, filepath.Base(path))
	for _, w := range warnings {
		logger.Debug("obj warning", zap.String("file", path), zap.String("warning", w))
	}
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}

	logger.Info("mesh loaded",
		zap.String("file", path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.Triangles()),
	)
	return mesh, nil
}
