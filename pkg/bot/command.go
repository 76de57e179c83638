package bot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/gif"
	"github.com/lilcord/lilbot/pkg/match"
	"github.com/lilcord/lilbot/pkg/metrics"
	"github.com/lilcord/lilbot/pkg/status"
)

var (
	_ domain.Command = (*RootCommand)(nil)
	_ domain.Command = (*CommandInstance)(nil)
)

// Deps are the collaborators that handlers call into.
type Deps struct {
	Roles   []*config.RoleConfig
	Status  *status.Store
	Gifs    gif.Searcher
	Matches match.Fetcher
	Tracker *match.Tracker
}

// RootCommand is the command table. It is fixed once compiled.
type RootCommand struct {
	cmds map[string]domain.Command
}

// CommandInstance is a single keyword handler.
type CommandInstance struct {
	name        string
	argsSyntax  string
	description string
	run         func(ctx domain.Context) error
}

func Compile(deps *Deps) (*RootCommand, error) {
	root := &RootCommand{
		cmds: make(map[string]domain.Command),
	}

	var instances []*CommandInstance
	instances = append(instances, staticCommands()...)
	instances = append(instances, roleCommands(deps.Roles)...)
	instances = append(instances, pollCommands()...)
	instances = append(instances, interactionCommands(deps.Gifs)...)
	if deps.Status != nil {
		instances = append(instances, statusCommands(deps.Status)...)
	}
	if deps.Matches != nil {
		instances = append(instances, vctCommand(deps.Matches, deps.Tracker))
	}

	for _, ci := range instances {
		if ci.name == "" {
			return nil, fmt.Errorf("command needs a name")
		}
		if _, ok := root.cmds[ci.name]; ok {
			return nil, fmt.Errorf("command name %s conflict", ci.name)
		}
		root.cmds[ci.name] = ci
	}

	// Add intrinsic help command
	if _, ok := root.cmds["help"]; ok {
		return nil, fmt.Errorf("`help` command is an intrinsic command and cannot be overridden")
	}
	root.cmds["help"] = &HelpCommand{root: root}

	return root, nil
}

// Execute dispatches on the leading argument. Unknown commands are ignored.
func (rc *RootCommand) Execute(ctx domain.Context) error {
	if len(ctx.Args()) == 0 {
		return nil
	}
	name := ctx.Args()[0]

	c, ok := rc.cmds[name]
	if !ok {
		return nil
	}

	err := c.Execute(ctx.ShiftArgs())
	metrics.Commands.WithLabelValues(name, lo.Ternary(err == nil, "ok", "error")).Inc()
	if err != nil {
		return fmt.Errorf("executing %s: %w", name, err)
	}
	return nil
}

// Names returns the sorted command keywords.
func (rc *RootCommand) Names() []string {
	names := lo.Keys(rc.cmds)
	slices.Sort(names)
	return names
}

func (rc *RootCommand) get(name string) (domain.Command, bool) {
	c, ok := rc.cmds[name]
	return c, ok
}

func (rc *RootCommand) HelpMessage(_ int) []string {
	var lines []string
	for _, name := range rc.Names() {
		lines = append(lines, rc.cmds[name].HelpMessage(0)...)
	}
	return lines
}

func (c *CommandInstance) Execute(ctx domain.Context) error {
	return c.run(ctx)
}

func (c *CommandInstance) HelpMessage(indent int) []string {
	syntax := c.matcher()
	if c.argsSyntax != "" {
		syntax += " " + c.argsSyntax
	}
	return []string{fmt.Sprintf(
		"%s- `%s`%s",
		strings.Repeat(" ", indent),
		syntax,
		lo.Ternary(c.description != "", " - "+c.description, ""),
	)}
}

func (c *CommandInstance) matcher() string {
	return config.C.Prefix + c.name
}

func mention(userID string) string {
	return "<@" + userID + ">"
}
