package benchmarking

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestRandomFlipBitCount(t *testing.T) {
	tests := []struct {
		length, flips, expected int
	}{
		{12, 0, 0},
		{12, 1, 1},
		{12, 3, 3},
		{4, 10, 4},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			input := mat.CSRVec(test.length)
			actual := RandomFlipBitCount(input, test.flips, NewSource(int64(i)))
			if actual.HammingDistance(input) != test.expected {
				t.Fatalf("expected %v flipped bits but found %v", test.expected, actual.HammingDistance(input))
			}
			if !input.IsZero() {
				t.Fatalf("expected the input to be unchanged")
			}
		})
	}
}

func TestFlipOneBit(t *testing.T) {
	input := mat.CSRVec(12, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0)
	rng := NewSource(1)
	for i := 0; i < 100; i++ {
		actual := FlipOneBit(input, rng)
		if actual.HammingDistance(input) != 1 {
			t.Fatalf("expected one flipped bit but found %v", actual.HammingDistance(input))
		}
		if actual.At(0) != input.At(0) {
			t.Fatalf("expected the first bit to never flip")
		}
	}
}

func TestReadWords(t *testing.T) {
	data := "index,word\n1,the\n2,don't\n3,well-known\n4,and/or\nx,skip\n5\n"
	actual, err := ReadWords(strings.NewReader(data))
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}
	expected := []string{"the", "dont", "wellknown", "andor"}
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v but found %v", expected, actual)
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte("1,alpha\n2,beta\n"), 0644); err != nil {
		t.Fatal(err)
	}
	actual, err := LoadWords(path)
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}
	if !reflect.DeepEqual([]string{"alpha", "beta"}, actual) {
		t.Fatalf("expected [alpha beta] but found %v", actual)
	}

	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected an error for a missing word list")
	}
}

func TestRandomText(t *testing.T) {
	rng := NewSource(0)
	if actual := RandomText(nil, 3, rng); actual != "testtesttest" {
		t.Fatalf("expected testtesttest but found %v", actual)
	}

	actual := RandomText([]string{"word"}, 3, rng)
	if actual != "word word word " {
		t.Fatalf("expected 'word word word ' but found %q", actual)
	}
}

func TestNewSourceRepeats(t *testing.T) {
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	codeword := mat.CSRVec(12)

	run := func(seed int64) (string, []mat.SparseVector) {
		rng := NewSource(seed)
		text := RandomText(words, 10, rng)
		flipped := make([]mat.SparseVector, 0, 10)
		for i := 0; i < 10; i++ {
			flipped = append(flipped, RandomFlipBitCount(codeword, 2, rng))
			flipped = append(flipped, FlipOneBit(codeword, rng))
		}
		return text, flipped
	}

	text1, flipped1 := run(7)
	text2, flipped2 := run(7)
	if text1 != text2 {
		t.Fatalf("expected the same text for the same seed but found %q and %q", text1, text2)
	}
	for i := range flipped1 {
		if !flipped1[i].Equals(flipped2[i]) {
			t.Fatalf("expected the same channel errors for the same seed at %v: %v != %v", i, flipped1[i], flipped2[i])
		}
	}
}
