// Package artifact stores step screenshots under a public directory and
// removes them again once clients have had time to fetch them.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/stepshot/pkg/types"
)

// Manager writes screenshots under a fixed root. Names are positional, so two
// runs capturing at the same time may overwrite each other's files.
type Manager struct {
	root   string
	logger types.Logger
}

// NewManager creates root if needed.
func NewManager(root string, logger types.Logger) (*Manager, error) {
	if logger == nil {
		logger = types.NopLogger()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating artifact root %q: %w", root, err)
	}
	return &Manager{root: root, logger: logger}, nil
}

func (m *Manager) Root() string {
	return m.root
}

// FileName is the file an artifact called name is stored in.
func FileName(name string) string {
	return "screenshot_" + name + ".png"
}

// Capture has scope write its screenshot to the root and returns both the
// public reference ("/" + file) and the path on disk.
func (m *Manager) Capture(ctx context.Context, scope types.Screenshotter, name string) (types.Artifact, error) {
	file := FileName(name)
	location := filepath.Join(m.root, file)

	if err := scope.Screenshot(ctx, location); err != nil {
		return types.Artifact{}, fmt.Errorf("capturing %s: %w", name, err)
	}
	recordCapture()
	m.logger.Debug().Str("artifact", file).Msg("Captured screenshot")

	return types.Artifact{
		Reference:       "/" + file,
		StorageLocation: location,
	}, nil
}

var _ types.Capturer = (*Manager)(nil)
