// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --agents, --config, --format, --cursor, --log-level, --force, --version

package main

import (
	"flag"
	"fmt"
	"io"
)

type cliArgs struct {
	agents   string
	config   string
	format   string
	cursor   int
	logLevel string
	force    bool
	version  bool

	command string
	rest    []string
}

const usage = `Usage: pi-mention [flags] [command] [text...]

Commands:
  route     show which agent a message would be routed to, with reasoning
  resolve   list the agents a message's @mentions refer to
  scan      show the mention being typed at --cursor and its candidates
  send      send a message and print the replies
  chat      interactive chat (default when stdin is a terminal)
  agents    list the loaded agents
  rpc       serve JSONL requests on stdin/stdout for editor integrations
  init      write a starter agents.yaml for this project
  config    show the effective settings and agent source

Text is read from stdin when not given as arguments.

Flags:
`

var commands = map[string]bool{
	"route": true, "resolve": true, "scan": true, "send": true,
	"chat": true, "agents": true, "init": true, "rpc": true, "config": true,
}

// parseArgs parses flags given before and after the command name.
func parseArgs(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("pi-mention", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&args.agents, "agents", "", "Agents YAML file or directory of Markdown agent files")
	fs.StringVar(&args.config, "config", "", "Settings file (default: merged ~/.pi-mention and .pi-mention config.json)")
	fs.StringVar(&args.format, "format", "text", "Output format: text, json, or markdown")
	fs.IntVar(&args.cursor, "cursor", -1, "Cursor rune offset for scan; -1 means end of text")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&args.force, "force", false, "Overwrite an existing agents file (init)")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}

	rest := fs.Args()
	if len(rest) > 0 && commands[rest[0]] {
		args.command = rest[0]
		if err := fs.Parse(rest[1:]); err != nil {
			return args, err
		}
		rest = fs.Args()
	}
	args.rest = rest
	return args, nil
}
