package bot

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
)

// roleCommands grants the configured role to the executor. Granting a role the
// executor already holds is not an error.
func roleCommands(roles []*config.RoleConfig) []*CommandInstance {
	return lo.Map(roles, func(rc *config.RoleConfig, _ int) *CommandInstance {
		roleName := rc.Role
		return &CommandInstance{
			name:        rc.Command,
			description: fmt.Sprintf("Get the %s role", roleName),
			run: func(ctx domain.Context) error {
				if ctx.GuildID() == "" {
					return ctx.ReplyBad("Roles can only be assigned in a server.")
				}
				roles, err := ctx.Roles()
				if err != nil {
					return fmt.Errorf("listing roles: %w", err)
				}
				role, ok := lo.Find(roles, func(r domain.Role) bool { return r.Name == roleName })
				if !ok {
					return ctx.Reply("Role doesn't exist")
				}
				if err := ctx.GrantRole(role.ID); err != nil {
					return fmt.Errorf("granting role %s: %w", roleName, err)
				}
				return ctx.Reply(fmt.Sprintf("%s is now assigned to %s!", ctx.ExecutorMention(), roleName))
			},
		}
	})
}
