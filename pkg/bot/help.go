package bot

import (
	"fmt"
	"strings"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/utils"
)

var _ domain.Command = (*HelpCommand)(nil)

// messageLimit is the Discord message length limit.
const messageLimit = 2000

type HelpCommand struct {
	root *RootCommand
}

func (h *HelpCommand) Execute(ctx domain.Context) error {
	var lines []string
	args := ctx.Args()

	// Root usage
	if len(args) == 0 {
		lines = append(lines, fmt.Sprintf("## lilbot v%s", utils.Version()))
		lines = append(lines, h.root.HelpMessage(0)...)
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Type `%shelp command-name` for more help", config.C.Prefix))
		return ctx.Reply(utils.LimitMessage(strings.Join(lines, "\n"), messageLimit))
	}

	// Specific command usage
	name := strings.TrimPrefix(args[0], config.C.Prefix)
	c, ok := h.root.get(name)
	if !ok {
		return ctx.ReplyBad(fmt.Sprintf("Command `%s%s` not found, try `%shelp`?", config.C.Prefix, name, config.C.Prefix))
	}

	lines = append(lines, fmt.Sprintf("## `%s%s` Usage", config.C.Prefix, name))
	lines = append(lines, c.HelpMessage(0)...)
	return ctx.Reply(lines...)
}

func (h *HelpCommand) HelpMessage(indent int) []string {
	return []string{fmt.Sprintf(
		"%s- `%shelp [command]` - Display help message.",
		strings.Repeat(" ", indent),
		config.C.Prefix,
	)}
}
