// ABOUTME: Standard filesystem paths for pi-mention configuration and agent definitions
// ABOUTME: Resolves ~/.pi-mention/ for global and .pi-mention/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".pi-mention"
	projectDirName = ".pi-mention"

	agentsFileName = "agents.yaml"
	agentsDirName  = "agents"
)

// GlobalDir returns the user-global config directory (~/.pi-mention/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.pi-mention/ in projectRoot).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.json")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.json")
}

// ProjectAgentsFile returns the project-local agents YAML path.
func ProjectAgentsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), agentsFileName)
}

// AgentSource is where agent definitions are read from. Exactly one of File
// and Dir is set.
type AgentSource struct {
	File string
	Dir  string
}

// String returns the path of the source.
func (s AgentSource) String() string {
	if s.File != "" {
		return s.File
	}
	return s.Dir
}

// AgentSource picks the agent definitions for projectRoot, in order:
// agents_file, agents_dir, the project's .pi-mention/agents.yaml, the
// project's .pi-mention/agents/ directory, then ~/.pi-mention/agents.yaml.
// Relative paths are taken from projectRoot.
func (s *Settings) AgentSource(projectRoot string) AgentSource {
	if s.AgentsFile != "" {
		return AgentSource{File: absFrom(projectRoot, s.AgentsFile)}
	}
	if s.AgentsDir != "" {
		return AgentSource{Dir: absFrom(projectRoot, s.AgentsDir)}
	}

	projectFile := ProjectAgentsFile(projectRoot)
	if fileExists(projectFile) {
		return AgentSource{File: projectFile}
	}
	projectAgents := filepath.Join(ProjectDir(projectRoot), agentsDirName)
	if info, err := os.Stat(projectAgents); err == nil && info.IsDir() {
		return AgentSource{Dir: projectAgents}
	}
	return AgentSource{File: filepath.Join(GlobalDir(), agentsFileName)}
}

func absFrom(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
