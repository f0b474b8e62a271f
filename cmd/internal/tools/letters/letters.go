package letters

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/syndromedecoding/benchmarking"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools"
	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const typeInfo = "Letters:syndrome"

var (
	Trials           uint
	ErrorProbability []float64
	Threads          uint
	WordsFile        string
	TextLength       uint
	Seed             int64
	Channel          string
)

const (
	countChannel  = "count"
	singleChannel = "single"
)

var LettersRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		fmt.Println("requires both ECC_JSON_FILE RESULT_JSON")
		return
	}

	if _, err := newChannel(Channel, 0, 2, nil); err != nil {
		fmt.Println(err)
		return
	}

	seed := Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logrus.Debugf("text and channel seed %v", seed)
	rng := benchmarking.NewSource(seed)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	//first get the ECC to use
	code, err := tools.LoadLetterCode(ctx, args[0], Seed)
	if err != nil {
		fmt.Println(err)
		return
	}

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
	data, err := tools.LoadResults(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}

	eccInfo := tools.Md5Sum(code.ParityCheckMatrix())
	//if data is nil then we create it
	if data == nil {
		data = &tools.SimulationStats{
			TypeInfo: typeInfo,
			ECCInfo:  eccInfo,
			Stats:    make(map[float64]benchmarking.Stats),
		}
	}

	//in either case lets validate it
	if data.TypeInfo != typeInfo {
		fmt.Printf("results loaded do not match the same type expected %v but found %v\n", typeInfo, data.TypeInfo)
		return
	}
	if data.ECCInfo != eccInfo {
		fmt.Println("results loaded do not match the ECC")
		return
	}

	var words []string
	if WordsFile != "" {
		words, err = benchmarking.LoadWords(WordsFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		logrus.Infof("Loaded %v words from %v", len(words), WordsFile)
	}

	runSimulation(ctx, data, code, rng, words, args[1])

	err = tools.SaveResults(args[1], data)
	if err != nil {
		fmt.Println(err)
	}

	stats := code.Stats()
	logrus.Infof("decoded %v letters, syndrome fallbacks %v, codeword fallbacks %v", stats.Decodes, stats.SyndromeFallbacks, stats.CodewordFallbacks)
}

// flipCount is the number of bits the channel flips per codeword, at least one unless p is 0
func flipCount(p float64, codewordLength int) int {
	if p <= 0 {
		return 0
	}
	count := int(p * float64(codewordLength))
	if count < 1 {
		count = 1
	}
	return count
}

// newChannel returns the channel named by the --channel flag for codewords of length n
func newChannel(name string, p float64, n int, rng syndrome.Source) (benchmarking.LetterChannel, error) {
	switch name {
	case countChannel:
		count := flipCount(p, n)
		return func(codeword mat.SparseVector) mat.SparseVector {
			return benchmarking.RandomFlipBitCount(codeword, count, rng)
		}, nil
	case singleChannel:
		return func(codeword mat.SparseVector) mat.SparseVector {
			return benchmarking.FlipOneBit(codeword, rng)
		}, nil
	}
	return nil, fmt.Errorf("unknown channel %q expected %v or %v", name, countChannel, singleChannel)
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, code *syndrome.Code[rune], rng syndrome.Source, words []string, outputFilename string) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	createText := func(trial int) string {
		return benchmarking.RandomText(words, int(TextLength), rng)
	}

	numberOfThread := int(Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	trials := int(Trials)
	trialsPerIter := numberOfThread * 10
	bar := pb.StartNew(trials * len(ErrorProbability))
	for _, p := range ErrorProbability {
		bar.Add(min(data.Stats[p].ChannelLetterError.Count, trials))
	}

	for target := trialsPerIter; ; target += trialsPerIter {
		target = min(target, trials)
		if ctx.Err() != nil {
			break
		}

		for _, p := range ErrorProbability {
			channel, err := newChannel(Channel, p, code.CodewordLength(), rng)
			if err != nil {
				fmt.Println(err)
				return
			}

			checkpoint := func(stats benchmarking.Stats) {
				//we want to save the checkpoint
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[p] = stats

				if checkpointCount%trialsPerIter == 0 {
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}
			before := data.Stats[p].ChannelLetterError.Count
			data.Stats[p] = benchmarking.BenchmarkLettersContinueStats(ctx, target, numberOfThread, createText, channel, code, checkpoint, data.Stats[p], false)
			if done := data.Stats[p].ChannelLetterError.Count - before; done > 0 {
				bar.Add(done)
			}
		}

		if target >= trials {
			break
		}
	}
	bar.Finish()
}
