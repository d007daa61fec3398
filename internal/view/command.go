// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aic/aic/internal/config"
)

// View names commands resolve to.
const (
	clustersView  = "clusters"
	hostsView     = "hosts"
	storageView   = "storage"
	endpointsView = "endpoints"
	helpView      = "help"
	quitView      = "quit"
)

var builtins = []string{endpointsView, helpView, quitView}

// Cmd is a parsed command line.
type Cmd struct {
	View string
	Args []string
}

// Arg returns the first argument, if any.
func (c Cmd) Arg() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// ParseCommand resolves the command name of line through aliases and
// checks its arguments.
func ParseCommand(aliases *config.Aliases, line string) (Cmd, error) {
	ff := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(ff) == 0 {
		return Cmd{View: clustersView}, nil
	}

	name := strings.ToLower(ff[0])
	if v, ok := aliases.Resolve(name); ok {
		name = v
	}
	cmd := Cmd{View: name, Args: ff[1:]}

	switch name {
	case clustersView, helpView, quitView:
		if len(cmd.Args) > 0 {
			return Cmd{}, fmt.Errorf("%s takes no argument", name)
		}
	case hostsView:
		if len(cmd.Args) != 1 {
			return Cmd{}, fmt.Errorf("usage: hosts <cluster-id>")
		}
	case storageView:
		if len(cmd.Args) != 1 || strings.Count(cmd.Arg(), "/") != 1 {
			return Cmd{}, fmt.Errorf("usage: storage <cluster-id>/<host-id>")
		}
	case endpointsView:
		if len(cmd.Args) > 1 {
			return Cmd{}, fmt.Errorf("usage: endpoints [name]")
		}
	default:
		return Cmd{}, fmt.Errorf("unknown command %q", ff[0])
	}

	return cmd, nil
}

// Command handles user command interpretation and execution.
type Command struct {
	app     *App
	aliases *config.Aliases
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App, aliases *config.Aliases) *Command {
	return &Command{
		app:     app,
		aliases: aliases,
	}
}

// Names returns the commands offered as suggestions.
func (c *Command) Names() []string {
	nn := append(c.aliases.Names(), builtins...)
	slices.Sort(nn)

	return slices.Compact(nn)
}

// Run parses and executes a command.
func (c *Command) Run(line string) error {
	cmd, err := ParseCommand(c.aliases, line)
	if err != nil {
		return err
	}

	switch cmd.View {
	case quitView:
		c.app.Stop()
		return nil
	case helpView:
		c.app.showHelp()
		return nil
	case endpointsView:
		if name := cmd.Arg(); name != "" {
			return c.app.SwitchEndpoint(name)
		}
		return c.app.inject(NewEndpoints(c.app), false)
	case hostsView:
		return c.app.inject(NewHosts(c.app, cmd.Arg()), true)
	case storageView:
		return c.app.inject(NewStorage(c.app, cmd.Arg()), true)
	default:
		return c.app.inject(NewClusters(c.app), true)
	}
}
