package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/registry"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the modules declared in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runList()
		},
	}
}

func runList() error {
	reg, err := registry.Load(GetCatalogPath())
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	tbl := output.NewTable("NAME", "REQUIRES", "ALWAYS")
	for _, m := range reg.Modules() {
		always := ""
		if m.Always {
			always = "yes"
		}
		tbl.Row(m.Name, strings.Join(m.Requires, ", "), always)
	}

	output.Println(tbl.String())
	return nil
}
