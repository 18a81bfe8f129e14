package diagram

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrUnavailable means no server-side renderer is installed; callers fall
// back to the browser mermaid runtime.
var ErrUnavailable = errors.New("diagram: mermaid renderer not available")

// Renderer turns mermaid source into an SVG document.
type Renderer interface {
	Render(ctx context.Context, src string) ([]byte, error)
}

// Mermaid shells out to the mermaid CLI (mmdc) and caches results by source hash.
type Mermaid struct {
	bin     string
	timeout time.Duration

	mu    sync.Mutex
	cache map[string][]byte
	run   func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

func NewMermaid(bin string) *Mermaid {
	if bin == "" {
		bin = "mmdc"
	}
	return &Mermaid{
		bin:     bin,
		timeout: 30 * time.Second,
		cache:   make(map[string][]byte),
		run:     runCommand,
	}
}

// Available reports whether the mermaid binary can be found.
func (m *Mermaid) Available() bool {
	_, err := exec.LookPath(m.bin)
	return err == nil
}

func (m *Mermaid) Render(ctx context.Context, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.New("diagram: empty source")
	}
	key := hashSource(src)

	m.mu.Lock()
	svg, ok := m.cache[key]
	m.mu.Unlock()
	if ok {
		return svg, nil
	}

	if _, err := exec.LookPath(m.bin); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnavailable, m.bin, err)
	}

	dir, err := os.MkdirTemp("", "portfolio-mermaid-")
	if err != nil {
		return nil, fmt.Errorf("diagram: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "diagram.mmd")
	out := filepath.Join(dir, "diagram.svg")
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		return nil, fmt.Errorf("diagram: write source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if output, err := m.run(ctx, m.bin, "-i", in, "-o", out, "-b", "transparent"); err != nil {
		return nil, fmt.Errorf("diagram: mmdc: %w: %s", err, bytes.TrimSpace(output))
	}

	svg, err = os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("diagram: read output: %w", err)
	}

	m.mu.Lock()
	m.cache[key] = svg
	m.mu.Unlock()
	return svg, nil
}

func runCommand(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).CombinedOutput()
}

func hashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
