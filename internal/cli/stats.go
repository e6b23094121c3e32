package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/maze"
	"github.com/mazekit/mazekit/pkg/mazeio"
)

// statsCommand creates the stats command for maze census output.
func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [maze.json]",
		Short: "Print census statistics for a maze document",
		Long: `Print census statistics for a maze document.

Reports cell, passage, and component counts, dead ends, the Euler
characteristic (zero for a perfect maze, negative when braiding has
added circuits), and the diameter (longest shortest path).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit statistics as JSON")

	return cmd
}

// censusReport is the JSON shape of the stats output.
type censusReport struct {
	Topology       string `json:"topology"`
	Cells          int    `json:"cells"`
	Passages       int    `json:"passages"`
	Components     int    `json:"components"`
	DeadEnds       int    `json:"dead_ends"`
	Isolated       int    `json:"isolated"`
	Characteristic int    `json:"characteristic"`
	Diameter       int    `json:"diameter"`
}

func runStats(input string, asJSON bool) error {
	g, err := mazeio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load maze %s: %w", input, err)
	}

	census := maze.TakeCensus(g)
	report := censusReport{
		Topology:       g.Topology(),
		Cells:          census.Cells,
		Passages:       census.Passages,
		Components:     census.Components,
		DeadEnds:       census.DeadEnds,
		Isolated:       census.Isolated,
		Characteristic: census.Characteristic(),
	}
	if cells := g.Cells(); len(cells) > 0 {
		_, report.Diameter = maze.LongestPath(g, cells[0])
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printKeyValue("Topology", report.Topology)
	printKeyValue("Cells", fmt.Sprintf("%d", report.Cells))
	printKeyValue("Passages", fmt.Sprintf("%d", report.Passages))
	printKeyValue("Components", fmt.Sprintf("%d", report.Components))
	printKeyValue("Dead ends", fmt.Sprintf("%d", report.DeadEnds))
	printKeyValue("Isolated", fmt.Sprintf("%d", report.Isolated))
	printKeyValue("Euler char", fmt.Sprintf("%d", report.Characteristic))
	printKeyValue("Diameter", fmt.Sprintf("%d", report.Diameter))

	if report.Components == 1 && report.Characteristic == 0 {
		printNewline()
		printSuccess("Perfect maze: one component, no circuits")
	} else if report.Characteristic < 0 {
		printNewline()
		printInfo("Braided maze: %d independent circuits", -report.Characteristic)
	}
	return nil
}
