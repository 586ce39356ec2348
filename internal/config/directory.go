// ABOUTME: Agent directory backed by files, re-read whenever their mtimes change
// ABOUTME: A failed reload keeps serving the last good agent list

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

// FileDirectory implements agents.Directory over an AgentSource. Every call
// to Agents stats the source and reloads it when anything changed, so edits
// to the definitions show up on the next keystroke.
type FileDirectory struct {
	src    AgentSource
	logger *slog.Logger

	mu    sync.Mutex
	stamp string
	list  []agents.Agent
}

// NewFileDirectory loads src once and fails if that first load fails.
// A nil logger discards reload warnings.
func NewFileDirectory(src AgentSource, logger *slog.Logger) (*FileDirectory, error) {
	if logger == nil {
		logger = log.Discard()
	}
	d := &FileDirectory{src: src, logger: logger}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Source returns where the agents are read from.
func (d *FileDirectory) Source() AgentSource {
	return d.src
}

// Agents returns the current agents, reloading them if the files changed.
func (d *FileDirectory) Agents() []agents.Agent {
	d.mu.Lock()
	defer d.mu.Unlock()

	stamp := d.fingerprint()
	if stamp != d.stamp {
		if err := d.reloadLocked(stamp); err != nil {
			d.logger.Warn("agent reload failed, keeping previous list", "source", d.src.String(), "error", err)
			// Warn once per change of the files.
			d.stamp = stamp
		}
	}
	return slices.Clone(d.list)
}

// Reload re-reads the source unconditionally.
func (d *FileDirectory) Reload() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reloadLocked(d.fingerprint())
}

// reloadLocked must hold mu.
func (d *FileDirectory) reloadLocked(stamp string) error {
	list, err := LoadAgents(d.src)
	if err != nil {
		return err
	}
	d.list = list
	d.stamp = stamp
	d.logger.Debug("agents loaded", "source", d.src.String(), "count", len(list))
	return nil
}

// fingerprint summarizes the size and mtime of every file the source reads.
// A missing path yields a distinct value so its reappearance is noticed.
func (d *FileDirectory) fingerprint() string {
	if d.src.Dir == "" {
		return statStamp(d.src.File)
	}

	entries, err := os.ReadDir(d.src.Dir)
	if err != nil {
		return "missing"
	}
	var b strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		b.WriteString(e.Name())
		b.WriteByte('=')
		b.WriteString(statStamp(filepath.Join(d.src.Dir, e.Name())))
		b.WriteByte(';')
	}
	return b.String()
}

func statStamp(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano())
}
