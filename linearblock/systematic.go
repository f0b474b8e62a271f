package linearblock

import (
	"errors"
	"fmt"

	"github.com/nathanhack/syndromedecoding/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidParameters is returned when the code parameters do not satisfy 0 < k < n.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrDimensionMismatch is returned (or panicked with) when sizes of vectors and matrices disagree.
	ErrDimensionMismatch = internal.ErrDimensionMismatch
)

//NewSystematic creates the (n,k) code with generator G=[I|A] and parity check H=[A;I].
func NewSystematic(k, n int) (*LinearBlock, error) {
	G, err := BuildGenerator(k, n)
	if err != nil {
		return nil, err
	}

	H, err := BuildParityCheck(G, k, n)
	if err != nil {
		return nil, err
	}

	return &LinearBlock{G: G, H: H}, nil
}

//BuildGenerator returns the k x n generator matrix [I|A]. A starts as all ones
// and has A[x][x] cleared for every x < min(k, n-k).
func BuildGenerator(k, n int) (mat.SparseMat, error) {
	if k < 1 || n <= k {
		return nil, fmt.Errorf("%w: 0 < k < n required but found k=%v n=%v", ErrInvalidParameters, k, n)
	}

	logrus.Debugf("Creating (%v,%v) generator matrix", n, k)
	values := make([]int, k*n)
	for r := 0; r < k; r++ {
		row := values[r*n : (r+1)*n]
		row[r] = 1
		for x := 0; x < n-k; x++ {
			if x != r {
				row[k+x] = 1
			}
		}
	}
	return mat.CSRMat(k, n, values...), nil
}

//BuildParityCheck returns the n x (n-k) parity check matrix for G=[I|A]:
// the top k rows are A and the bottom n-k rows are the identity.
func BuildParityCheck(G mat.SparseMat, k, n int) (mat.SparseMat, error) {
	if k < 1 || n <= k {
		return nil, fmt.Errorf("%w: 0 < k < n required but found k=%v n=%v", ErrInvalidParameters, k, n)
	}
	rows, cols := G.Dims()
	if rows != k || cols != n {
		return nil, fmt.Errorf("%w: generator shape (%v,%v) required but found (%v,%v)", ErrDimensionMismatch, k, n, rows, cols)
	}

	m := n - k
	values := make([]int, n*m)
	for r := 0; r < k; r++ {
		row := G.Row(r)
		for c := 0; c < m; c++ {
			values[r*m+c] = row.At(k + c)
		}
	}
	for r := 0; r < m; r++ {
		values[(k+r)*m+r] = 1
	}

	logrus.Debugf("Parity check matrix complete")
	return mat.CSRMat(n, m, values...), nil
}
