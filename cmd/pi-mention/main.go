// ABOUTME: CLI entry point for pi-mention
// ABOUTME: Parses flags, loads settings and agents, dispatches to print or chat mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/pi-mention-go/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/pi-mention-go/internal/chat"
	"github.com/mauromedda/pi-mention-go/internal/config"
	pilog "github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/internal/mode/interactive"
	"github.com/mauromedda/pi-mention-go/internal/mode/print"
	"github.com/mauromedda/pi-mention-go/internal/mode/rpc"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	args, err := parseArgs(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if args.version {
		fmt.Fprintf(stdout, "pi-mention %s (%s) built %s\n", version, commit, date)
		return 0
	}

	if err := dispatch(ctx, args, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// dispatch performs the initialization sequence and runs the selected command.
func dispatch(ctx context.Context, args cliArgs, stdin io.Reader, stdout, stderr io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := loadSettings(args, cwd)
	if err != nil {
		return err
	}

	switch args.command {
	case "init":
		return runInit(args, cwd, stdout)
	case "config":
		_, err := fmt.Fprint(stdout, config.Explain(settings, agentSource(args, settings, cwd)))
		return err
	}

	command := args.command
	if command == "" {
		command = "route"
		if isTerminal(stdin) {
			command = "chat"
		}
	}

	logger, closeLog := newLogger(settings, command, stderr)
	defer closeLog()

	src := agentSource(args, settings, cwd)
	dir, err := config.NewFileDirectory(src, logger)
	if err != nil {
		return fmt.Errorf("%w (run `pi-mention init` to create a starter file)", err)
	}
	logger.Debug("agents loaded", "source", src.String(), "count", len(dir.Agents()))

	if command == "chat" {
		session := chat.NewSession(chat.Config{
			Directory:        dir,
			Sender:           chat.EchoSender{Delay: settings.EchoDelay(), PreviewLength: settings.PreviewLength},
			MatchMode:        settings.Mode(),
			MaxSuggestions:   settings.Suggestions(),
			RequireRecipient: settings.RequireRecipient,
			Logger:           logger,
		})
		return interactive.Run(ctx, session, interactive.Options{Input: stdin, Output: stderr})
	}

	if command == "rpc" {
		router := rpc.NewRouter()
		rpc.RegisterHandlers(router, rpc.Deps{
			Directory:        dir,
			Sender:           chat.EchoSender{Delay: settings.EchoDelay(), PreviewLength: settings.PreviewLength},
			MatchMode:        settings.Mode(),
			MaxSuggestions:   settings.Suggestions(),
			RequireRecipient: settings.RequireRecipient,
			Logger:           logger,
		})
		logger.Info("rpc server started")
		return rpc.NewServer(stdin, stdout, router.Handle).Run(ctx)
	}

	format, err := print.ParseFormat(args.format)
	if err != nil {
		return err
	}
	p := print.New(stdout, print.Config{
		Format:        format,
		Width:         terminalWidth(stdout),
		PreviewLength: settings.PreviewLength,
	}, print.Deps{
		Directory:        dir,
		Sender:           chat.EchoSender{PreviewLength: settings.PreviewLength},
		MatchMode:        settings.Mode(),
		MaxSuggestions:   settings.Suggestions(),
		RequireRecipient: settings.RequireRecipient,
		Logger:           logger,
	})

	if command == "agents" {
		return p.Agents()
	}

	text, err := print.Input(args.rest, stdin)
	if err != nil {
		return err
	}

	switch command {
	case "route":
		return p.Route(text)
	case "resolve":
		return p.Resolve(text)
	case "scan":
		cursor := args.cursor
		if cursor < 0 {
			cursor = len([]rune(text))
		}
		return p.Scan(text, cursor)
	case "send":
		return p.Send(ctx, text)
	}
	return fmt.Errorf("unknown command %q", command)
}

func loadSettings(args cliArgs, cwd string) (*config.Settings, error) {
	var settings *config.Settings
	var err error
	if args.config != "" {
		settings, err = config.LoadFile(args.config)
	} else {
		settings, err = config.Load(cwd)
	}
	if err != nil {
		return nil, err
	}

	if args.logLevel != "" {
		settings.LogLevel = args.logLevel
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// agentSource prefers --agents, which may name a file or a directory.
func agentSource(args cliArgs, settings *config.Settings, cwd string) config.AgentSource {
	if args.agents == "" {
		return settings.AgentSource(cwd)
	}
	path := args.agents
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return config.AgentSource{Dir: path}
	}
	return config.AgentSource{File: path}
}

// newLogger writes to stderr, except in chat mode where stderr carries the
// interface and log lines go to a file under the global config directory.
func newLogger(settings *config.Settings, command string, stderr io.Writer) (*slog.Logger, func()) {
	level, _ := pilog.ParseLevel(settings.LogLevel)
	format, _ := pilog.ParseFormat(settings.LogFormat)

	if command != "chat" {
		return pilog.New(pilog.Options{Level: level, Format: format, Writer: stderr}), func() {}
	}

	if err := os.MkdirAll(config.GlobalDir(), 0o755); err != nil {
		return pilog.Discard(), func() {}
	}
	f, err := os.OpenFile(filepath.Join(config.GlobalDir(), "chat.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return pilog.Discard(), func() {}
	}
	return pilog.New(pilog.Options{Level: level, Format: format, Writer: f}), func() { _ = f.Close() }
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// runInit writes the starter agents to --agents or the project agents file.
func runInit(args cliArgs, cwd string, stdout io.Writer) error {
	path := args.agents
	if path == "" {
		path = config.ProjectAgentsFile(cwd)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	if _, err := os.Stat(path); err == nil && !args.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveAgentsFile(path, starterAgents()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Wrote %d agents to %s\n", len(starterAgents()), path)
	return nil
}

// starterAgents is the team written by init.
func starterAgents() []agents.Agent {
	return []agents.Agent{
		{
			ID: "research", Name: "Research Assistant", Category: "research",
			Description: "Finds sources, analyzes data and summarizes findings",
			Keywords:    []string{"research", "data", "analyze", "analysis", "study"},
			Status:      agents.StatusActive,
		},
		{
			ID: "code", Name: "Code Assistant", Category: "engineering",
			Description: "Writes, reviews and debugs code",
			Keywords:    []string{"code", "bug", "debug", "function", "program"},
			Status:      agents.StatusActive,
		},
		{
			ID: "writer", Name: "Writing Assistant", Category: "content",
			Description: "Drafts and edits prose",
			Keywords:    []string{"write", "draft", "edit", "essay", "blog"},
			Status:      agents.StatusActive,
		},
		{
			ID: "planner", Name: "Project Planner", Category: "planning",
			Description: "Breaks work into milestones and schedules",
			Keywords:    []string{"plan", "schedule", "roadmap", "milestone"},
			Status:      agents.StatusIdle,
		},
	}
}
