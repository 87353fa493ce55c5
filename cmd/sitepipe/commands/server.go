package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sitepipe/internal/app"
	"go.trai.ch/sitepipe/internal/core/domain"
)

func (c *CLI) newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   domain.TaskServer.String(),
		Short: "Build, then serve the site with live reload and rebuild on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), app.ServeOptions{Addr: addr})
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default "+domain.DefaultAddr+")")
	return cmd
}
