package decode

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools"
	"github.com/nathanhack/syndromedecoding/linearblock"
	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	"github.com/spf13/cobra"
)

var Seed int64

var DecodeRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		fmt.Println("requires ECC_JSON_FILE and at least one BITS")
		return
	}

	code, err := tools.LoadLetterCode(context.Background(), args[0], Seed)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, bits := range args[1:] {
		received, err := linearblock.ParseBits(bits)
		if err != nil {
			fmt.Println(err)
			return
		}
		if received.Len() != code.CodewordLength() {
			fmt.Printf("%v: codeword length == %v required but found %v\n", bits, code.CodewordLength(), received.Len())
			return
		}

		letter, outcome := code.Decode(received)
		fmt.Printf("%v -> %c (%v)\n", bits, letter, colorOutcome(outcome))
	}

	stats := code.Stats()
	fmt.Printf("decoded %v, syndrome fallbacks %v, codeword fallbacks %v\n", stats.Decodes, stats.SyndromeFallbacks, stats.CodewordFallbacks)
}

func colorOutcome(outcome syndrome.Outcome) string {
	if outcome == syndrome.Exact {
		return color.GreenString(outcome.String())
	}
	return color.YellowString(outcome.String())
}
