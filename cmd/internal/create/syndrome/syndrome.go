package syndrome

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathanhack/syndromedecoding/linearblock"
	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Message   uint
	Codeword  uint
	TableFile string
)

var SyndromeRun = func(cmd *cobra.Command, args []string) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	k, n := int(Message), int(Codeword)
	lb, err := linearblock.NewSystematic(k, n)
	if err != nil {
		fmt.Println("Unable to create linearblock: ", err)
		return
	}

	if !lb.Validate() {
		fmt.Println("Created linearblock failed validation")
		return
	}

	table, err := syndrome.BuildTable(ctx, lb.H, n, k)
	if err != nil {
		fmt.Println("Unable to create syndrome table: ", err)
		return
	}
	logrus.Infof("(%v,%v) code rate %0.03f, syndrome table covers %v syndromes (%0.01f%%)", n, k, lb.CodeRate(), table.Len(), 100*table.Coverage())

	bs, err := json.Marshal(lb)
	if err != nil {
		fmt.Println("Unable to serialize the linearblock: ", err)
		return
	}

	err = os.WriteFile(args[0], bs, 0644)
	if err != nil {
		fmt.Println("unable to write file: ", err)
		return
	}

	if TableFile == "" {
		return
	}

	bs, err = json.Marshal(table)
	if err != nil {
		fmt.Println("Unable to serialize the syndrome table: ", err)
		return
	}

	err = os.WriteFile(TableFile, bs, 0644)
	if err != nil {
		fmt.Println("unable to write file: ", err)
	}
}
