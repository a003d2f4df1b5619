package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Publisher writes chart images into a directory without ever exposing a
// half-written file: each render goes to a per-request temp file that is
// renamed into place, and superseded images for the same slot are removed
// after the new one is visible.
type Publisher struct {
	dir string
}

// NewPublisher creates the charts directory if needed.
func NewPublisher(dir string) (*Publisher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}
	return &Publisher{dir: dir}, nil
}

// Dir returns the directory published images live in.
func (p *Publisher) Dir() string {
	return p.dir
}

// Publish renders one image for the named slot and returns its filename.
// Concurrent publishers for the same slot never clobber each other's
// in-flight writes; the slot simply ends up with whichever finished last.
func (p *Publisher) Publish(slot string, render func(io.Writer) error) (string, error) {
	tmp, err := os.CreateTemp(p.dir, "."+slot+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp chart file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("render chart %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp chart file: %w", err)
	}

	name := fmt.Sprintf("%s-%s.png", slot, uuid.NewString())
	if err := os.Rename(tmp.Name(), filepath.Join(p.dir, name)); err != nil {
		return "", fmt.Errorf("publish chart %s: %w", slot, err)
	}

	p.removeSuperseded(slot, name)
	return name, nil
}

func (p *Publisher) removeSuperseded(slot, keep string) {
	matches, err := filepath.Glob(filepath.Join(p.dir, slot+"-*.png"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if filepath.Base(m) != keep {
			_ = os.Remove(m)
		}
	}
}
