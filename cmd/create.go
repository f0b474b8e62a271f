package cmd

import (
	"github.com/nathanhack/syndromedecoding/cmd/internal/create/syndrome"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create a new ECC",
	Long:    `create provides the ability to make a new ECC and save it so it can be used later by the tools.`,
}

// createlinearblockCmd represents the linearblock command
var createlinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "creates linearblock ECCs",
	Long:    `Creates linearblock ECCs.`,
}

// createSyndromeCmd represents the syndrome command
var createSyndromeCmd = &cobra.Command{
	Use:     "syndrome OUTPUT_ECC_JSON",
	Aliases: []string{"s", "syn"},
	Short:   "Creates a new systematic code for syndrome decoding",
	Long:    `Creates a new systematic (n,k) code with generator [I|A] and parity check [A;I]. The syndrome table is rebuilt from the parity check matrix whenever the code is loaded.`,
	Args:    cobra.ExactArgs(1),
	Run:     syndrome.SyndromeRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createlinearblockCmd)

	createlinearblockCmd.AddCommand(createSyndromeCmd)
	createSyndromeCmd.Flags().UintVarP(&syndrome.Message, "message", "k", 8, "the number of bits in the message (k)")
	createSyndromeCmd.Flags().UintVarP(&syndrome.Codeword, "codeword", "n", 12, "the number of bits for the whole codeword(message+ecc) (n > k)")
	createSyndromeCmd.Flags().StringVarP(&syndrome.TableFile, "table", "t", "", "optional file to write the syndrome table JSON to")
}
