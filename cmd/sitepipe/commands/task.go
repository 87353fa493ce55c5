package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sitepipe/internal/core/domain"
)

var taskCommands = []struct {
	name  domain.TaskName
	short string
}{
	{domain.TaskHugo, "Build the site with Hugo"},
	{domain.TaskHugoPreview, "Build the site with Hugo, including drafts and future posts"},
	{domain.TaskCSS, "Bundle and minify stylesheets"},
	{domain.TaskJS, "Bundle and minify scripts"},
	{domain.TaskSVG, "Inject the icon sprite into the site partial"},
	{domain.TaskBuild, "Build assets, then the site"},
	{domain.TaskBuildPreview, "Build assets, then the site with drafts and future posts"},
}

func (c *CLI) newTaskCmd(name domain.TaskName, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), name)
		},
	}
}
