package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eggplot/pkg/terminal"
)

// terminalsCommand creates the terminals command, which probes gnuplot and
// shows which terminal each target would use.
func (c *CLI) terminalsCommand() *cobra.Command {
	var opts probeOpts

	cmd := &cobra.Command{
		Use:   "terminals",
		Short: "Probe gnuplot terminals and show the terminal chosen per target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			oracle, closeOracle, err := c.newOracle(ctx, opts, "")
			if err != nil {
				return err
			}
			defer closeOracle()

			prog := newProgress(c.Logger)
			caps, err := terminal.Probe(ctx, oracle)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Probed %d terminals", len(terminal.Probed)))

			for _, name := range terminal.Probed {
				status := styleAbsent.Render("missing")
				if caps.Has(name) {
					status = styleExact.Render("available")
				}
				printKeyValue(name, status)
			}
			printNewline()
			fmt.Fprintln(cmd.OutOrStdout(), selectionTable(terminal.SelectAll(terminal.All, caps)).Render())
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func selectionTable(sels []terminal.Selection) *table.Table {
	rows := make([][]string, len(sels))
	for i, s := range sels {
		directive := s.Directive
		if directive == "" {
			directive = "(gnuplot default)"
		}
		status := "exact"
		if s.Fallback {
			status = "fallback"
		}
		rows[i] = []string{s.Target.String(), directive, s.Tables.Name(), status}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Target", "Terminal", "Tables", "Styles").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 3 && row < len(sels) && sels[row].Fallback {
				return base.Foreground(colorYellow)
			}
			if col == 0 {
				return base.Foreground(colorCyan)
			}
			return base
		})
}
