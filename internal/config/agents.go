// ABOUTME: Agent directory loading from a YAML file or a directory of Markdown definitions
// ABOUTME: Validates ids, names and status; missing status means active

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

// ErrNoAgents is returned when a source defines no agents.
var ErrNoAgents = errors.New("no agents defined")

type agentsFile struct {
	Agents []agentRecord `yaml:"agents"`
}

// agentRecord is the on-disk form of an agent.
type agentRecord struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
	Status      string   `yaml:"status,omitempty"`
}

func (r agentRecord) agent() (agents.Agent, error) {
	status, err := agents.ParseStatus(r.Status)
	if err != nil {
		return agents.Agent{}, err
	}
	return agents.Agent{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Category:    r.Category,
		Keywords:    r.Keywords,
		Status:      status,
	}, nil
}

// LoadAgents reads agents from src.
func LoadAgents(src AgentSource) ([]agents.Agent, error) {
	if src.Dir != "" {
		return LoadAgentsDir(src.Dir)
	}
	return LoadAgentsFile(src.File)
}

// LoadAgentsFile reads a YAML file with a top-level agents list.
func LoadAgentsFile(path string) ([]agents.Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agents file: %w", err)
	}
	list, err := ParseAgentsYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// ParseAgentsYAML decodes and validates an agents document.
func ParseAgentsYAML(data []byte) ([]agents.Agent, error) {
	var doc agentsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoAgents
		}
		return nil, fmt.Errorf("parsing agents: %w", err)
	}

	list := make([]agents.Agent, 0, len(doc.Agents))
	for i, r := range doc.Agents {
		a, err := r.agent()
		if err != nil {
			return nil, fmt.Errorf("agent %d (%s): %w", i+1, r.ID, err)
		}
		list = append(list, a)
	}
	if err := validateAgents(list); err != nil {
		return nil, err
	}
	return list, nil
}

// LoadAgentsDir reads every *.md file in dir, sorted by file name. Each file
// carries frontmatter with id, name, description, category, keywords and
// status. The id defaults to the file name, the name to the id, and the
// description to the first paragraph of the body.
func LoadAgentsDir(dir string) ([]agents.Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading agents dir: %w", err)
	}

	var list []agents.Agent
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		a, err := parseAgentMarkdown(string(data), entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		list = append(list, a)
	}

	if err := validateAgents(list); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return list, nil
}

func parseAgentMarkdown(content, filename string) (agents.Agent, error) {
	rec, body, err := ParseFrontmatter[agentRecord](content)
	if err != nil {
		return agents.Agent{}, err
	}
	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	if strings.TrimSpace(rec.Name) == "" {
		rec.Name = rec.ID
	}
	if rec.Description == "" {
		rec.Description = firstParagraph(body)
	}
	return rec.agent()
}

// firstParagraph joins the lines of the first non-blank paragraph with spaces.
func firstParagraph(body string) string {
	var lines []string
	for line := range strings.SplitSeq(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, strings.TrimLeft(line, "# "))
	}
	return strings.Join(lines, " ")
}

// validateAgents enforces non-empty ids and names and unique ids.
func validateAgents(list []agents.Agent) error {
	if len(list) == 0 {
		return ErrNoAgents
	}
	seen := make(map[string]bool, len(list))
	for i, a := range list {
		if a.ID == "" {
			return fmt.Errorf("agent %d: missing id", i+1)
		}
		if a.Name == "" {
			return fmt.Errorf("agent %q: missing name", a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id %q", a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// SaveAgentsFile writes list as an agents YAML document.
func SaveAgentsFile(path string, list []agents.Agent) error {
	doc := agentsFile{Agents: make([]agentRecord, len(list))}
	for i, a := range list {
		doc.Agents[i] = agentRecord{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Category:    a.Category,
			Keywords:    slices.Clone(a.Keywords),
			Status:      string(a.Status),
		}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding agents: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating agents dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
