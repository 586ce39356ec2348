// ABOUTME: Settings loading with global + project config merge, env overrides and defaults
// ABOUTME: JSON-based configuration; zero values are filled from defaults after merging

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

// Defaults applied to zero-valued settings.
const (
	DefaultMaxSuggestions = 8
	DefaultPreviewLength  = 80
	DefaultEchoDelayMS    = 600
)

// Environment overrides.
const (
	EnvLogLevel   = "PI_MENTION_LOG_LEVEL"
	EnvAgentsFile = "PI_MENTION_AGENTS_FILE"
)

// Settings holds the merged configuration.
type Settings struct {
	AgentsFile string `json:"agents_file,omitempty"`
	AgentsDir  string `json:"agents_dir,omitempty"`
	MatchMode  string `json:"match_mode,omitempty"`
	// MaxSuggestions caps the autocomplete list; a negative value means unlimited.
	MaxSuggestions int    `json:"max_suggestions,omitempty"`
	PreviewLength  int    `json:"preview_length,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
	LogFormat      string `json:"log_format,omitempty"`
	// EchoDelayMS is the simulated reply latency; a negative value means none.
	EchoDelayMS      int  `json:"echo_delay_ms,omitempty"`
	RequireRecipient bool `json:"require_recipient,omitempty"`
}

// Load reads and merges global and project-local settings, expands ${VAR}
// references, applies environment overrides and fills defaults.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	return LoadWithHome(projectRoot, filepath.Dir(GlobalDir()))
}

// LoadWithHome is Load with an explicit home directory.
func LoadWithHome(projectRoot, home string) (*Settings, error) {
	global, err := loadFile(filepath.Join(home, globalDirName, "config.json"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return finish(merge(global, project))
}

// LoadFile reads a single settings file, as selected with --config.
func LoadFile(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return finish(s)
}

func finish(s *Settings) (*Settings, error) {
	ResolveEnvVars(s)
	applyEnvOverrides(s)
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	// The agent source is replaced as a pair.
	if project.AgentsFile != "" || project.AgentsDir != "" {
		result.AgentsFile = project.AgentsFile
		result.AgentsDir = project.AgentsDir
	}
	if project.MatchMode != "" {
		result.MatchMode = project.MatchMode
	}
	if project.MaxSuggestions != 0 {
		result.MaxSuggestions = project.MaxSuggestions
	}
	if project.PreviewLength != 0 {
		result.PreviewLength = project.PreviewLength
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.LogFormat != "" {
		result.LogFormat = project.LogFormat
	}
	if project.EchoDelayMS != 0 {
		result.EchoDelayMS = project.EchoDelayMS
	}
	if project.RequireRecipient {
		result.RequireRecipient = true
	}

	return &result
}

func applyEnvOverrides(s *Settings) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvAgentsFile); v != "" {
		s.AgentsFile = v
		s.AgentsDir = ""
	}
}

func (s *Settings) applyDefaults() {
	if s.MatchMode == "" {
		s.MatchMode = string(agents.MatchSubstring)
	}
	if s.MaxSuggestions == 0 {
		s.MaxSuggestions = DefaultMaxSuggestions
	}
	if s.PreviewLength <= 0 {
		s.PreviewLength = DefaultPreviewLength
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.LogFormat == "" {
		s.LogFormat = string(log.FormatText)
	}
	if s.EchoDelayMS == 0 {
		s.EchoDelayMS = DefaultEchoDelayMS
	}
}

// Validate checks the enumerated fields.
func (s *Settings) Validate() error {
	if _, err := agents.ParseMatchMode(s.MatchMode); err != nil {
		return fmt.Errorf("match_mode: %w", err)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := log.ParseFormat(s.LogFormat); err != nil {
		return fmt.Errorf("log_format: %w", err)
	}
	return nil
}

// Mode returns the parsed match mode. Call after Validate.
func (s *Settings) Mode() agents.MatchMode {
	m, _ := agents.ParseMatchMode(s.MatchMode)
	return m
}

// EchoDelay returns the simulated reply latency.
func (s *Settings) EchoDelay() time.Duration {
	if s.EchoDelayMS < 0 {
		return 0
	}
	return time.Duration(s.EchoDelayMS) * time.Millisecond
}

// Suggestions returns the editor cap, where 0 means unlimited.
func (s *Settings) Suggestions() int {
	return max(s.MaxSuggestions, 0)
}
