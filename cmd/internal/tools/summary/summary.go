package summary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathanhack/syndromedecoding/cmd/internal/tools"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var SummaryRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	stats, err := tools.LoadAllResults(args)
	if err != nil {
		fmt.Println(err)
		return
	}

	render(os.Stdout, args, stats)
}

// Row is the summary of one results file across all of its probabilities.
type Row struct {
	Name                string
	MeanErrorPercentage float64
	StdErrorPercentage  float64
	MeanDecodeTime      float64 // nanoseconds per letter
}

func summarize(name string, s *tools.SimulationStats) Row {
	probabilities := make([]float64, 0, len(s.Stats))
	for p := range s.Stats {
		probabilities = append(probabilities, p)
	}
	sort.Float64s(probabilities)

	errors := make([]float64, len(probabilities))
	times := make([]float64, len(probabilities))
	for i, p := range probabilities {
		errors[i] = 100 * s.Stats[p].ChannelLetterError.Mean
		times[i] = s.Stats[p].DecodeTime.Mean
	}

	row := Row{Name: strings.TrimSuffix(name, filepath.Ext(name))}
	if len(errors) == 0 {
		return row
	}
	row.MeanErrorPercentage, row.StdErrorPercentage = stat.MeanStdDev(errors, nil)
	row.MeanDecodeTime = stat.Mean(times, nil)
	return row
}

func render(w io.Writer, names []string, stats []*tools.SimulationStats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Results File", "Avg Error Percentage(%)", "Standard Deviation", "Avg Decode Time (ns)"})
	for i, s := range stats {
		row := summarize(names[i], s)
		table.Append([]string{
			row.Name,
			fmt.Sprintf("%0.03f", row.MeanErrorPercentage),
			fmt.Sprintf("%0.03f", row.StdErrorPercentage),
			fmt.Sprintf("%0.01f", row.MeanDecodeTime),
		})
	}
	table.Render()
}
