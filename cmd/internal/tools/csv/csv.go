package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathanhack/syndromedecoding/benchmarking"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var SyndromeFallback bool
var CodewordFallback bool
var DecodeTime bool

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	stats, err := tools.LoadAllResults(args)
	if err != nil {
		fmt.Println(err)
		return
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	for _, record := range records(args, stats) {
		err = w.Write(record)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

// records returns the header followed by one row per results file
func records(names []string, stats []*tools.SimulationStats) [][]string {
	percentagesFloats := make(map[float64]bool)
	for _, s := range stats {
		for p := range s.Stats {
			percentagesFloats[p] = true
		}
	}

	percentagesList := make([]float64, 0, len(percentagesFloats))
	for p := range percentagesFloats {
		percentagesList = append(percentagesList, p)
	}
	sort.Float64s(percentagesList)

	header := []string{"Results File"}
	for _, p := range percentagesList {
		header = append(header, fmt.Sprintf("%v", p))
	}

	result := [][]string{header}
	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = strings.TrimSuffix(names[i], filepath.Ext(names[i]))

		for j, p := range percentagesList {
			if v, has := s.Stats[p]; has {
				record[j+1] = fmt.Sprintf("%v", value(v))
			}
		}
		result = append(result, record)
	}
	return result
}

func value(v benchmarking.Stats) float64 {
	switch {
	case SyndromeFallback:
		return v.SyndromeFallback.Mean
	case CodewordFallback:
		return v.CodewordFallback.Mean
	case DecodeTime:
		return v.DecodeTime.Mean
	default:
		return v.ChannelLetterError.Mean
	}
}
