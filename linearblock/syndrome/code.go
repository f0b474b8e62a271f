package syndrome

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nathanhack/syndromedecoding/linearblock"
	"github.com/nathanhack/syndromedecoding/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknownSymbol is returned when encoding a symbol outside the alphabet.
var ErrUnknownSymbol = errors.New("unknown symbol")

//Source is the randomness used to pick fallbacks; *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type options struct {
	source Source
}

type Option func(*options)

//WithSource sets the randomness used on the fallback paths.
func WithSource(source Source) Option {
	return func(o *options) {
		o.source = source
	}
}

//WithSeed makes fallback choices reproducible.
func WithSeed(seed int64) Option {
	return WithSource(rand.New(rand.NewSource(seed)))
}

//Outcome tells how Decode reached its symbol.
type Outcome uint8

const (
	// SyndromeFallback is set when the syndrome was not in the table and a random table error vector was used.
	SyndromeFallback Outcome = 1 << iota
	// CodewordFallback is set when the corrected word was not a codeword and a random symbol was returned.
	CodewordFallback
)

// Exact means neither fallback was used.
const Exact Outcome = 0

func (o Outcome) String() string {
	if o == Exact {
		return "exact"
	}
	parts := make([]string, 0, 2)
	if o&SyndromeFallback != 0 {
		parts = append(parts, "syndrome-fallback")
	}
	if o&CodewordFallback != 0 {
		parts = append(parts, "codeword-fallback")
	}
	return strings.Join(parts, "|")
}

//DecodeStats counts decodes and how many of them needed a fallback.
type DecodeStats struct {
	Decodes           uint64
	SyndromeFallbacks uint64
	CodewordFallbacks uint64
}

//Code is a systematic linear block code over an alphabet of symbols. All of
// its matrices and tables are built by New and only read afterwards, so a Code
// can be shared by concurrent decoders.
type Code[S constraints.Ordered] struct {
	block     *linearblock.LinearBlock
	table     *Table
	codewords map[string]S
	encoded   map[S]mat.SparseVector
	symbols   []S //codeword dictionary values ordered by codeword

	sourceMux sync.Mutex
	source    Source

	decodes           atomic.Uint64
	syndromeFallbacks atomic.Uint64
	codewordFallbacks atomic.Uint64
}

//New creates the (n,k) systematic code and encodes every symbol of alphabet
// (each a k bit message) to build the codeword dictionary.
// n-k must not exceed MaxParitySymbols, otherwise ErrInvalidParameters is returned.
func New[S constraints.Ordered](ctx context.Context, k, n int, alphabet map[S]mat.SparseVector, opts ...Option) (*Code[S], error) {
	block, err := linearblock.NewSystematic(k, n)
	if err != nil {
		return nil, err
	}
	return FromLinearBlock(ctx, block, alphabet, opts...)
}

//FromLinearBlock creates a Code around an existing systematic linear block.
// Like New it rejects blocks with more than MaxParitySymbols parity symbols.
func FromLinearBlock[S constraints.Ordered](ctx context.Context, block *linearblock.LinearBlock, alphabet map[S]mat.SparseVector, opts ...Option) (*Code[S], error) {
	if block == nil || !block.Validate() {
		return nil, fmt.Errorf("%w: linearblock is not a valid systematic code", linearblock.ErrInvalidParameters)
	}
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: alphabet must not be empty", linearblock.ErrInvalidParameters)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	k, n := block.MessageLength(), block.CodewordLength()
	table, err := BuildTable(ctx, block.H, n, k)
	if err != nil {
		return nil, err
	}

	c := &Code[S]{
		block:     block,
		table:     table,
		codewords: make(map[string]S, len(alphabet)),
		encoded:   make(map[S]mat.SparseVector, len(alphabet)),
		source:    o.source,
	}

	//sorted so duplicate codewords always resolve to the same (last) symbol
	symbols := maps.Keys(alphabet)
	slices.Sort(symbols)
	for _, s := range symbols {
		message := alphabet[s]
		if message.Len() != k {
			return nil, fmt.Errorf("%w: symbol %v has %v bits but the message length is %v", linearblock.ErrDimensionMismatch, s, message.Len(), k)
		}
		codeword := block.Encode(message)
		c.codewords[internal.BitString(codeword)] = s
		c.encoded[s] = codeword
	}

	keys := maps.Keys(c.codewords)
	slices.Sort(keys)
	c.symbols = make([]S, len(keys))
	for i, key := range keys {
		c.symbols[i] = c.codewords[key]
	}

	logrus.Debugf("Code (%v,%v) ready with %v codewords", n, k, len(c.codewords))
	return c, nil
}

//DecodeLetter returns the most probable symbol for received.
func (c *Code[S]) DecodeLetter(received mat.SparseVector) S {
	s, _ := c.Decode(received)
	return s
}

//Decode corrects received using the syndrome table and maps the result to a
// symbol. A syndrome missing from the table is replaced by a random recorded
// error vector, and a corrected word that is not a codeword is replaced by a
// random symbol. The outcome reports which of these happened.
func (c *Code[S]) Decode(received mat.SparseVector) (symbol S, outcome Outcome) {
	syndrome := c.block.Syndrome(received)

	errorVector, found := c.table.Lookup(syndrome)
	if !found {
		outcome |= SyndromeFallback
		if c.table.Len() > 0 {
			errorVector = c.table.errorAt(c.intn(c.table.Len()))
		} else {
			errorVector = mat.CSRVec(received.Len())
		}
	}

	corrected := mat.CSRVecCopy(received)
	corrected.Add(corrected, errorVector)

	symbol, found = c.codewords[internal.BitString(corrected)]
	if !found {
		outcome |= CodewordFallback
		symbol = c.symbols[c.intn(len(c.symbols))]
	}

	c.decodes.Add(1)
	if outcome&SyndromeFallback != 0 {
		c.syndromeFallbacks.Add(1)
	}
	if outcome&CodewordFallback != 0 {
		c.codewordFallbacks.Add(1)
	}
	return symbol, outcome
}

func (c *Code[S]) intn(n int) int {
	c.sourceMux.Lock()
	defer c.sourceMux.Unlock()
	return c.source.Intn(n)
}

//Encode returns the codeword for symbol.
func (c *Code[S]) Encode(symbol S) (mat.SparseVector, error) {
	codeword, has := c.encoded[symbol]
	if !has {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSymbol, symbol)
	}
	return mat.CSRVecCopy(codeword), nil
}

func (c *Code[S]) GeneratorMatrix() mat.SparseMat {
	return mat.CSRMatCopy(c.block.G)
}

func (c *Code[S]) ParityCheckMatrix() mat.SparseMat {
	return mat.CSRMatCopy(c.block.H)
}

//SyndromeTable returns the table, which is never modified.
func (c *Code[S]) SyndromeTable() *Table {
	return c.table
}

//Codewords returns a copy of the codeword dictionary keyed by codeword bit string.
func (c *Code[S]) Codewords() map[string]S {
	return maps.Clone(c.codewords)
}

//Block returns a copy of the underlying linear block.
func (c *Code[S]) Block() *linearblock.LinearBlock {
	return &linearblock.LinearBlock{
		G: c.GeneratorMatrix(),
		H: c.ParityCheckMatrix(),
	}
}

func (c *Code[S]) MessageLength() int {
	return c.block.MessageLength()
}

func (c *Code[S]) CodewordLength() int {
	return c.block.CodewordLength()
}

//Stats returns the decode counters accumulated so far.
func (c *Code[S]) Stats() DecodeStats {
	return DecodeStats{
		Decodes:           c.decodes.Load(),
		SyndromeFallbacks: c.syndromeFallbacks.Load(),
		CodewordFallbacks: c.codewordFallbacks.Load(),
	}
}
