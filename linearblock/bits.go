package linearblock

import (
	"github.com/nathanhack/syndromedecoding/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

//BitString renders v as a string of '0' and '1'
func BitString(v mat.SparseVector) string {
	return internal.BitString(v)
}

//ParseBits parses a string of '0' and '1' into a vector
func ParseBits(bits string) (mat.SparseVector, error) {
	return internal.ParseBits(bits)
}
