package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
)

// linespecCommand creates the linespec command, which previews the style
// lines of a plot without any data or gnuplot.
func (c *CLI) linespecCommand() *cobra.Command {
	var (
		curves int
		family string
		styles []string
	)

	cmd := &cobra.Command{
		Use:   "linespec",
		Short: "Print the gnuplot style lines for a set of line specs",
		Long: `Resolve line specs for a number of curves and print the resulting
"set style line" commands for one terminal family.

Examples:
  eggplot linespec -n 3
  eggplot linespec -n 3 --family aqua -s "3:marker=*,linestyle=--" -s "1:ms=4.98"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, ok := linespec.ParseFamily(family)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput,
					"unknown family %q (must be one of %s)", family, strings.Join(familyNames(), ", "))
			}
			res := linespec.NewResolver()
			for _, s := range styles {
				o, err := parseStyleFlag(s)
				if err != nil {
					return err
				}
				if err := res.SetAll(o.Index, o.Pairs...); err != nil {
					return err
				}
			}
			records, err := res.Resolve(curves)
			if err != nil {
				return err
			}
			lines, err := linespec.RenderAll(records, linespec.TablesFor(fam))
			if err != nil {
				return err
			}
			c.Logger.Debug("resolved line specs", "curves", curves, "family", fam, "overrides", len(res.Overrides()))
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&curves, "curves", "n", 1, "number of curves")
	cmd.Flags().StringVarP(&family, "family", "f", linespec.FamilyWxt.String(), "terminal family")
	cmd.Flags().StringArrayVarP(&styles, "style", "s", nil, `line spec, e.g. "2:linestyle=--,marker=o" (repeatable)`)
	return cmd
}
