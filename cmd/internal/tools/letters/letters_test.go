package letters

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nathanhack/syndromedecoding/alphabet"
	"github.com/nathanhack/syndromedecoding/benchmarking"
	"github.com/nathanhack/syndromedecoding/cmd/internal/tools"
	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	mat "github.com/nathanhack/sparsemat"
)

func TestFlipCount(t *testing.T) {
	tests := []struct {
		p        float64
		n        int
		expected int
	}{
		{0, 12, 0},
		{0.01, 12, 1},
		{0.1, 12, 1},
		{0.25, 12, 3},
		{0.5, 16, 8},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if actual := flipCount(test.p, test.n); actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

func TestNewChannel(t *testing.T) {
	rng := benchmarking.NewSource(3)
	input := mat.CSRVec(12, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0)

	single, err := newChannel(singleChannel, 0.25, 12, rng)
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}
	for i := 0; i < 100; i++ {
		actual := single(input)
		if actual.HammingDistance(input) != 1 {
			t.Fatalf("expected one flipped bit but found %v", actual.HammingDistance(input))
		}
		if actual.At(0) != input.At(0) {
			t.Fatalf("expected the first bit to never flip")
		}
	}

	count, err := newChannel(countChannel, 0.25, 12, rng)
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}
	if d := count(input).HammingDistance(input); d != 3 {
		t.Fatalf("expected 3 flipped bits but found %v", d)
	}

	if _, err := newChannel("gaussian", 0.25, 12, rng); err == nil {
		t.Fatalf("expected an error for an unknown channel")
	}
}

func TestRunSimulationExactTrials(t *testing.T) {
	ctx := context.Background()
	code, err := syndrome.New(ctx, 8, 12, alphabet.Letters(), syndrome.WithSeed(0))
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}

	Trials, Threads, TextLength, Channel = 95, 2, 3, countChannel
	ErrorProbability = []float64{0, 0.1}

	data := &tools.SimulationStats{
		TypeInfo: typeInfo,
		ECCInfo:  tools.Md5Sum(code.ParityCheckMatrix()),
		Stats:    make(map[float64]benchmarking.Stats),
	}
	output := filepath.Join(t.TempDir(), "results.json")

	// 95 is not a multiple of the 20 trials run between checkpoints
	runSimulation(ctx, data, code, benchmarking.NewSource(0), nil, output)
	for _, p := range ErrorProbability {
		if actual := data.Stats[p].ChannelLetterError.Count; actual != 95 {
			t.Fatalf("expected 95 trials for %v but found %v", p, actual)
		}
	}
	if data.Stats[0].ChannelLetterError.Mean != 0 {
		t.Fatalf("expected no letter errors over an error-free channel but found %v", data.Stats[0])
	}

	// a resumed run with a larger trial count only tops up the difference
	Trials = 130
	runSimulation(ctx, data, code, benchmarking.NewSource(1), nil, output)
	for _, p := range ErrorProbability {
		if actual := data.Stats[p].ChannelLetterError.Count; actual != 130 {
			t.Fatalf("expected 130 trials for %v but found %v", p, actual)
		}
	}
}
