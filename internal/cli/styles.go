package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
)

// stylesCommand creates the styles command, which shows the code tables.
func (c *CLI) stylesCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "styles [family]",
		Short: "Show line-style and marker codes per terminal family",
		Long: `Show the gnuplot line types and point types each style token maps to.

Families: ` + strings.Join(familyNames(), ", ") + `

Examples:
  eggplot styles            # all families side by side
  eggplot styles canvas     # one family
  eggplot styles -i         # browse interactively`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return familyNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				final, err := tea.NewProgram(NewFamilyListModel(linespec.Families())).Run()
				if err != nil {
					return err
				}
				if m, ok := final.(FamilyListModel); ok && m.Selected != nil {
					writeStylesTable(cmd.OutOrStdout(), []linespec.Family{*m.Selected})
				}
				return nil
			}
			families := linespec.Families()
			if len(args) == 1 {
				f, ok := linespec.ParseFamily(args[0])
				if !ok {
					return errors.New(errors.ErrCodeInvalidInput,
						"unknown family %q (must be one of %s)", args[0], strings.Join(familyNames(), ", "))
				}
				families = []linespec.Family{f}
			}
			writeStylesTable(cmd.OutOrStdout(), families)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse families interactively")
	return cmd
}

func familyNames() []string {
	fams := linespec.Families()
	names := make([]string, len(fams))
	for i, f := range fams {
		names[i] = f.String()
	}
	return names
}

// stylesRows returns one row per token: the token, then the code of each family.
func stylesRows(families []linespec.Family) [][]string {
	var rows [][]string
	add := func(kind, token string, code func(*linespec.Tables) (int, bool)) {
		row := []string{kind, token}
		for _, f := range families {
			if n, ok := code(linespec.TablesFor(f)); ok {
				row = append(row, strconv.Itoa(n))
			} else {
				row = append(row, "—")
			}
		}
		rows = append(rows, row)
	}
	for _, tok := range linespec.LineStyleTokens() {
		add("line", tok, func(t *linespec.Tables) (int, bool) { return t.LineStyleCode(tok) })
	}
	for _, tok := range linespec.MarkerTokens() {
		add("marker", tok, func(t *linespec.Tables) (int, bool) { return t.MarkerCode(tok) })
	}
	return rows
}

func stylesTable(families []linespec.Family) *table.Table {
	headers := []string{"", "Token"}
	for _, f := range families {
		headers = append(headers, f.String())
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := stylesRows(families)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorDim)
			case col == 1:
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})
}

func writeStylesTable(w io.Writer, families []linespec.Family) {
	fmt.Fprintln(w, stylesTable(families).Render())
	for _, f := range families {
		fmt.Fprintf(w, "%s %s: %d glyphs, grid line type %d\n",
			StyleDim.Render(iconInfo), f, linespec.TablesFor(f).MarkerGlyphs(), linespec.GridLineType(f))
	}
}
