package cmd

import (
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools/chart"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools/csv"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools/decode"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools/letters"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools/summary"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for ECCs",
	Long:    `Tools for ECCs`,
}

// toolsDecodeCmd represents the decode command
var toolsDecodeCmd = &cobra.Command{
	Use:     "decode ECC_JSON_FILE BITS [BITS] ...",
	Aliases: []string{"d"},
	Short:   "Decodes received codewords to letters",
	Long:    `Decodes received codewords (strings of 0 and 1) to letters using syndrome decoding, reporting when a fallback was needed.`,
	Args:    cobra.MinimumNArgs(2),
	Run:     decode.DecodeRun,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsLinearblockCmd represents the linearblock command
var toolsLinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "Linearblock channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsLettersCmd represents the letters command
var toolsLettersCmd = &cobra.Command{
	Use:   "letters ECC_JSON_FILE RESULT_JSON",
	Short: "A binary symmetric channel simulator for letters of random text",
	Long:  `Encodes the letters of random text, flips bits of each codeword and decodes them with syndrome decoding.`,
	Args:  cobra.ExactArgs(2),
	Run:   letters.LettersRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:   "chart RESULTS_JSON [RESULTS_JSON] ...",
	Short: "Export to an HTML bar chart",
	Long:  `Export the letter error rates to an HTML bar chart`,
	Run:   chart.ChartRun,
}

// toolsSummaryCmd represents the summary command
var toolsSummaryCmd = &cobra.Command{
	Use:     "summary RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"s"},
	Short:   "Print mean and standard deviation of the error percentage",
	Long:    `Print the mean and standard deviation of the letter error percentage across probabilities, and the mean decode time, for each results file`,
	Run:     summary.SummaryRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsDecodeCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)

	toolsDecodeCmd.Flags().Int64VarP(&decode.Seed, "seed", "s", 0, "seed for the fallback choices (0 means time seeded)")

	toolsChansimCmd.AddCommand(toolsLinearblockCmd)
	toolsLinearblockCmd.AddCommand(toolsLettersCmd)
	toolsLettersCmd.Flags().UintVarP(&letters.Trials, "trials", "t", 10_000, "the number of trials per step")
	toolsLettersCmd.Flags().Float64SliceVarP(&letters.ErrorProbability, "probability", "p", []float64{0, 0.05, 0.10, 0.15, 0.20, 0.25}, "probability of crossover errors to test [0, 0.5]; at least one bit is flipped when >0")
	toolsLettersCmd.Flags().UintVar(&letters.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsLettersCmd.Flags().StringVarP(&letters.WordsFile, "words", "w", "", "word list CSV of index,word rows (empty means repeat \"test\")")
	toolsLettersCmd.Flags().UintVarP(&letters.TextLength, "length", "l", 10, "the number of words in each random text")
	toolsLettersCmd.Flags().StringVarP(&letters.Channel, "channel", "c", "count", "channel model: count flips max(1, p*n) bits, single flips one bit in [1, n-1]")
	toolsLettersCmd.Flags().Int64VarP(&letters.Seed, "seed", "s", 0, "seed for text, channel and fallback randomness (0 means time seeded)")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.SyndromeFallback, "syndrome", "s", false, "outputs the syndrome fallback rate instead of the letter error")
	toolsCSVCmd.Flags().BoolVarP(&csv.CodewordFallback, "codeword", "c", false, "outputs the codeword fallback rate instead of the letter error")
	toolsCSVCmd.Flags().BoolVarP(&csv.DecodeTime, "time", "t", false, "outputs the decode time per letter (ns) instead of the letter error")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")

	toolsResultsCmd.AddCommand(toolsSummaryCmd)
}
