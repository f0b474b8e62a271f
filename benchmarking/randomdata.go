package benchmarking

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/nathanhack/syndromedecoding/linearblock/syndrome"
	mat "github.com/nathanhack/sparsemat"
)

type lockedSource struct {
	mux sync.Mutex
	rng *rand.Rand
}

func (l *lockedSource) Intn(n int) int {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.rng.Intn(n)
}

// NewSource returns a seeded syndrome.Source that trials running on
// different threads can share.
func NewSource(seed int64) syndrome.Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

// RandomFlipBitCount randomly flips min(numberOfBitsToFlip,len(input)) number of bits.
func RandomFlipBitCount(input mat.SparseVector, numberOfBitsToFlip int, rng syndrome.Source) mat.SparseVector {
	output := mat.CSRVecCopy(input)

	flip := make(map[int]bool)
	for len(flip) < numberOfBitsToFlip && len(flip) < input.Len() {
		flip[rng.Intn(input.Len())] = true
	}

	for i := range flip {
		output.Set(i, output.At(i)+1)
	}
	return output
}

// FlipOneBit flips a single random bit, never the first one.
func FlipOneBit(input mat.SparseVector, rng syndrome.Source) mat.SparseVector {
	output := mat.CSRVecCopy(input)
	if input.Len() < 2 {
		return output
	}
	i := 1 + rng.Intn(input.Len()-1)
	output.Set(i, output.At(i)+1)
	return output
}

var wordReplacer = strings.NewReplacer("'", "", "-", "", "/", "")

// LoadWords reads a word list CSV of "index,word" rows. Rows without a
// numeric index (like a header) are skipped.
func LoadWords(filepath string) ([]string, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while opening word list %v: %w", filepath, err)
	}
	defer f.Close()

	return ReadWords(f)
}

// ReadWords is LoadWords for an already open reader.
func ReadWords(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	words := make([]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error while reading word list: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(record[0])); err != nil {
			continue
		}
		word := wordReplacer.Replace(strings.TrimSpace(record[1]))
		if word != "" {
			words = append(words, word)
		}
	}
	return words, nil
}

// RandomText joins wordCount random words, each new word placed in front.
// Without any words it repeats "test".
func RandomText(words []string, wordCount int, rng syndrome.Source) string {
	if len(words) == 0 {
		return strings.Repeat("test", wordCount)
	}

	text := ""
	for i := 0; i < wordCount; i++ {
		text = words[rng.Intn(len(words))] + " " + text
	}
	return text
}
