package internal

import (
	"errors"
	"fmt"
	"strings"

	mat "github.com/nathanhack/sparsemat"
)

// ErrDimensionMismatch is used when a vector and matrix can not be multiplied
// or a bit vector has the wrong length for a code.
var ErrDimensionMismatch = errors.New("dimension mismatch")

//MulMod2 returns vector*matrix over GF(2). A vector whose length is not the
// number of matrix rows is a programming error and panics.
func MulMod2(vector mat.SparseVector, matrix mat.SparseMat) mat.SparseVector {
	rows, cols := matrix.Dims()
	if vector.Len() != rows {
		panic(fmt.Errorf("%w: vector length %v with matrix of %v rows", ErrDimensionMismatch, vector.Len(), rows))
	}

	result := mat.CSRVec(cols)
	result.MulMat(vector, matrix)
	return result
}

//Identity returns the n x n identity matrix.
func Identity(n int) mat.SparseMat {
	return mat.CSRIdentity(n)
}

//BitString renders v as a fixed order string of '0' and '1', one per position.
// It is used as the map key for syndromes and codewords.
func BitString(v mat.SparseVector) string {
	buf := strings.Builder{}
	buf.Grow(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.At(i) > 0 {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return buf.String()
}

//ParseBits is the inverse of BitString.
func ParseBits(bits string) (mat.SparseVector, error) {
	v := mat.CSRVec(len(bits))
	for i, b := range bits {
		switch b {
		case '0':
		case '1':
			v.Set(i, 1)
		default:
			return nil, fmt.Errorf("invalid bit %q at index %v in %q", b, i, bits)
		}
	}
	return v, nil
}

//ValidateGH tests if G*H == 0 where G is k x n and H is n x (n-k)
func ValidateGH(G, H mat.SparseMat) bool {
	gRows, gCols := G.Dims()
	hRows, hCols := H.Dims()
	if gCols != hRows {
		return false
	}

	//cache the columns of H so each one is only extracted once
	cache := make([]mat.SparseVector, hCols)
	for j := 0; j < hCols; j++ {
		cache[j] = H.Column(j)
	}
	for i := 0; i < gRows; i++ {
		row := G.Row(i)
		for j := 0; j < hCols; j++ {
			if row.Dot(cache[j]) > 0 {
				return false
			}
		}
	}

	return true
}
