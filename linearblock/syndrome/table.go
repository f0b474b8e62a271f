package syndrome

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nathanhack/syndromedecoding/linearblock"
	"github.com/nathanhack/syndromedecoding/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MaxParitySymbols bounds n-k since the table enumerates 2^(n-k)-1 candidates.
const MaxParitySymbols = 24

//Table maps a syndrome to the error vector chosen for it. The zero syndrome
// is implicit and always maps to the zero error vector. A Table is never
// modified after BuildTable returns.
type Table struct {
	codewordLength int
	paritySymbols  int
	entries        map[string]mat.SparseVector
	order          []string
}

//BuildTable enumerates 2^(n-k)-1 candidate error vectors and keeps the first
// candidate seen for every non-zero syndrome.
//
// Candidates are single bits cycling through the n positions. Each time the
// position wraps the weight counter grows, and only the wrapping candidate
// also gets its first weight bits set. The result approximates, but does not
// guarantee, minimum weight coset leaders and may leave syndromes uncovered.
func BuildTable(ctx context.Context, H mat.SparseMat, n, k int) (*Table, error) {
	if k < 1 || n <= k {
		return nil, fmt.Errorf("%w: 0 < k < n required but found k=%v n=%v", linearblock.ErrInvalidParameters, k, n)
	}
	m := n - k
	if m > MaxParitySymbols {
		return nil, fmt.Errorf("%w: at most %v parity symbols supported but found %v", linearblock.ErrInvalidParameters, MaxParitySymbols, m)
	}
	if rows, cols := H.Dims(); rows != n || cols != m {
		return nil, fmt.Errorf("%w: parity check shape (%v,%v) required but found (%v,%v)", linearblock.ErrDimensionMismatch, n, m, rows, cols)
	}

	logrus.Debugf("Creating syndrome table for (%v,%v) code", n, k)
	table := &Table{
		codewordLength: n,
		paritySymbols:  m,
		entries:        make(map[string]mat.SparseVector),
	}

	size := 1<<m - 1
	position := 0
	weight := -1
	for i := 0; i < size; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate := mat.CSRVec(n)
		if position == n {
			position = 0
			weight++
			for j := 0; j < weight && j < n; j++ {
				candidate.Set(j, 1)
			}
		}
		candidate.Set(position, 1)
		position++

		syndrome := internal.MulMod2(candidate, H)
		if syndrome.IsZero() {
			continue
		}
		key := internal.BitString(syndrome)
		if _, has := table.entries[key]; !has {
			table.entries[key] = candidate
		}
	}

	table.order = maps.Keys(table.entries)
	slices.Sort(table.order)

	logrus.Debugf("Syndrome table complete: %v of %v syndromes covered", table.Len(), size)
	return table, nil
}

//Lookup returns the error vector for syndrome and whether the syndrome was
// recorded. The zero syndrome is always found.
func (t *Table) Lookup(syndrome mat.SparseVector) (errorVector mat.SparseVector, found bool) {
	if syndrome.Len() != t.paritySymbols {
		panic(fmt.Errorf("%w: syndrome length == %v required but found %v", linearblock.ErrDimensionMismatch, t.paritySymbols, syndrome.Len()))
	}
	if syndrome.IsZero() {
		return mat.CSRVec(t.codewordLength), true
	}

	e, has := t.entries[internal.BitString(syndrome)]
	if !has {
		return nil, false
	}
	return mat.CSRVecCopy(e), true
}

//Len is the number of recorded syndromes, excluding the implicit zero syndrome.
func (t *Table) Len() int {
	return len(t.entries)
}

//Coverage is the fraction of non-zero syndromes that were recorded.
func (t *Table) Coverage() float64 {
	return float64(t.Len()) / float64(int(1)<<t.paritySymbols-1)
}

func (t *Table) CodewordLength() int {
	return t.codewordLength
}

func (t *Table) ParitySymbols() int {
	return t.paritySymbols
}

//Entries returns a copy of the table keyed by the syndrome bit string.
func (t *Table) Entries() map[string]mat.SparseVector {
	result := make(map[string]mat.SparseVector, len(t.entries))
	for s, e := range t.entries {
		result[s] = mat.CSRVecCopy(e)
	}
	return result
}

//Errors returns the recorded error vectors ordered by syndrome.
func (t *Table) Errors() []mat.SparseVector {
	result := make([]mat.SparseVector, len(t.order))
	for i, s := range t.order {
		result[i] = mat.CSRVecCopy(t.entries[s])
	}
	return result
}

// errorAt avoids the copies made by Errors on the decode path
func (t *Table) errorAt(i int) mat.SparseVector {
	return t.entries[t.order[i]]
}

//MarshalJSON writes the table as {"syndrome bits": "error bits"}
func (t *Table) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(t.entries))
	for s, e := range t.entries {
		out[s] = internal.BitString(e)
	}
	return json.Marshal(out)
}
