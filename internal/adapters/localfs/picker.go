package localfs

import (
	"context"
	"os"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/ports"
)

// PathPicker is the CLI stand-in for an OS image picker: it "picks" a path
// supplied by the user. An empty path means the user backed out.
type PathPicker struct {
	Path string
}

var _ ports.ImagePicker = PathPicker{}

func (p PathPicker) Pick(ctx context.Context) (string, error) {
	if p.Path == "" {
		return "", entities.ErrPickCancelled
	}
	if _, err := os.Stat(p.Path); err != nil {
		return "", mapFSError("pick", err)
	}
	return p.Path, nil
}
