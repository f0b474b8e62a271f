package benchmarking

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/syndromedecoding/alphabet"
	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

type Stats struct {
	ChannelLetterError avgstd.AvgStd // fraction of letters decoded to the wrong letter
	SyndromeFallback   avgstd.AvgStd // fraction of letters whose syndrome was missing from the table
	CodewordFallback   avgstd.AvgStd // fraction of letters whose corrected word was not a codeword
	DecodeTime         avgstd.AvgStd // nanoseconds per decoded letter
}

func (s Stats) String() string {
	return fmt.Sprintf("{Letter:%0.02f(+/-%0.02f), SyndromeFallback:%0.02f(+/-%0.02f), CodewordFallback:%0.02f(+/-%0.02f)}",
		s.ChannelLetterError.Mean, math.Sqrt(s.ChannelLetterError.SampledVariance()),
		s.SyndromeFallback.Mean, math.Sqrt(s.SyndromeFallback.SampledVariance()),
		s.CodewordFallback.Mean, math.Sqrt(s.CodewordFallback.SampledVariance()),
	)
}

type Checkpoints func(updatedStats Stats)

type TextConstructor func(trial int) (text string)

type LetterChannel func(codeword mat.SparseVector) (channelInducedCodeword mat.SparseVector)

//LetterCode is satisfied by *syndrome.Code[rune]
type LetterCode interface {
	Encode(letter rune) (codeword mat.SparseVector, err error)
	Decode(received mat.SparseVector) (letter rune, outcome syndrome.Outcome)
}

func BenchmarkLetters(ctx context.Context,
	trials int, threads int,
	createText TextConstructor,
	channel LetterChannel,
	code LetterCode,
	checkpoints Checkpoints,
	showProgress bool) Stats {
	return BenchmarkLettersContinueStats(ctx, trials, threads, createText, channel, code, checkpoints, Stats{}, showProgress)
}

//BenchmarkLettersContinueStats runs trials until previousStats holds trials samples.
// Each trial creates a text, sends each letter's codeword through the channel and decodes it.
// Texts without letters are not counted.
func BenchmarkLettersContinueStats(ctx context.Context,
	trials int, threads int,
	createText TextConstructor,
	channel LetterChannel,
	code LetterCode,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.ChannelLetterError.Count
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	pool := threadpool.NewFixedSize(ctx, threads, trialsToRun)
	statsMux := sync.Mutex{}

	trial := func(i int) {
		if showProgress {
			bar.Increment()
		}
		//we create a random text
		letters := alphabet.StripNonLetters(createText(i))
		if len(letters) == 0 {
			return
		}

		letterErrors, syndromeFallbacks, codewordFallbacks := 0, 0, 0
		var elapsed time.Duration
		for _, letter := range letters {
			// encode to get our codeword
			codeword, err := code.Encode(letter)
			if err != nil {
				panic(err)
			}

			// send through the channel to get channel induced errors
			channelInducedCodeword := channel(codeword)

			// decode (correcting errors if possible)
			start := time.Now()
			decoded, outcome := code.Decode(channelInducedCodeword)
			elapsed += time.Since(start)

			if decoded != letter {
				letterErrors++
			}
			if outcome&syndrome.SyndromeFallback != 0 {
				syndromeFallbacks++
			}
			if outcome&syndrome.CodewordFallback != 0 {
				codewordFallbacks++
			}
		}

		count := float64(len(letters))
		statsMux.Lock()
		previousStats.ChannelLetterError.Update(float64(letterErrors) / count)
		previousStats.SyndromeFallback.Update(float64(syndromeFallbacks) / count)
		previousStats.CodewordFallback.Update(float64(codewordFallbacks) / count)
		previousStats.DecodeTime.Update(float64(elapsed.Nanoseconds()) / count)
		if checkpoints != nil {
			checkpoints(previousStats) //give them the updated checkpoint
		}
		statsMux.Unlock()
	}

	for i := previousStats.ChannelLetterError.Count; i < trials; i++ {
		tmp := i
		pool.Add(func() { trial(tmp) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	return previousStats
}
