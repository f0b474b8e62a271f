package syndrome

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/nathanhack/syndromedecoding/linearblock"
	"github.com/nathanhack/syndromedecoding/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, k, n int) (*linearblock.LinearBlock, *Table) {
	t.Helper()
	block, err := linearblock.NewSystematic(k, n)
	require.NoError(t, err)
	table, err := BuildTable(context.Background(), block.H, n, k)
	require.NoError(t, err)
	return block, table
}

func TestBuildTableHamming7(t *testing.T) {
	block, table := buildTable(t, 4, 7)

	require.LessOrEqual(t, table.Len(), 1<<3-1)
	require.Equal(t, 7, table.Len())
	require.Equal(t, 1.0, table.Coverage())

	//every single bit error is its own coset leader
	for i := 0; i < 7; i++ {
		e := mat.CSRVec(7)
		e.Set(i, 1)
		actual, found := table.Lookup(block.Syndrome(e))
		require.True(t, found)
		require.True(t, actual.Equals(e), "position %v: expected %v but found %v", i, e, actual)
	}
}

func TestBuildTableLetters(t *testing.T) {
	_, table := buildTable(t, 8, 12)

	expected := map[string]string{
		"0111": "100000000000",
		"1011": "010000000000",
		"1101": "001000000000",
		"1110": "000100000000",
		"1111": "000010000000",
		"1000": "000000001000",
		"0100": "000000000100",
		"0010": "000000000010",
		"0001": "000000000001",
	}

	actual := make(map[string]string)
	for s, e := range table.Entries() {
		actual[s] = internal.BitString(e)
	}
	require.Equal(t, expected, actual)
	require.Len(t, table.Errors(), 9)

	_, found := table.Lookup(mat.CSRVec(4, 0, 0, 1, 1))
	require.False(t, found)
}

func TestBuildTableWeightedCandidates(t *testing.T) {
	// 2^(5)-1 = 31 candidates for n=6 walks through the wrapping candidates
	_, table := buildTable(t, 1, 6)

	for s, e := range table.Entries() {
		require.NotEqual(t, "00000", s)
		require.Equal(t, 6, e.Len())
		require.Greater(t, e.HammingWeight(), 0)
	}
	require.LessOrEqual(t, table.Len(), 31)
}

func TestLookupZeroSyndrome(t *testing.T) {
	tests := [][2]int{{4, 7}, {8, 12}, {3, 4}, {1, 2}}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, table := buildTable(t, test[0], test[1])
			e, found := table.Lookup(mat.CSRVec(test[1] - test[0]))
			require.True(t, found)
			require.True(t, e.IsZero())
			require.Equal(t, test[1], e.Len())
		})
	}
}

func TestBuildTableSkipsZeroSyndrome(t *testing.T) {
	// A = [0,1,1]^T so the first candidate is a codeword
	_, table := buildTable(t, 3, 4)
	require.Equal(t, 0, table.Len())
}

func TestBuildTableErrors(t *testing.T) {
	_, err := BuildTable(context.Background(), mat.CSRMat(1, 1), 30, 5)
	require.True(t, errors.Is(err, linearblock.ErrInvalidParameters))

	_, err = BuildTable(context.Background(), mat.CSRMat(1, 1), 4, 4)
	require.True(t, errors.Is(err, linearblock.ErrInvalidParameters))

	_, err = BuildTable(context.Background(), mat.CSRMat(7, 4), 7, 4)
	require.True(t, errors.Is(err, linearblock.ErrDimensionMismatch))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BuildTable(ctx, mat.CSRMat(7, 3), 7, 4)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestTableMarshalJSON(t *testing.T) {
	_, table := buildTable(t, 4, 7)
	bs, err := json.Marshal(table)
	require.NoError(t, err)

	var actual map[string]string
	require.NoError(t, json.Unmarshal(bs, &actual))
	require.Len(t, actual, 7)
	require.Equal(t, "1000000", actual["011"])
}
