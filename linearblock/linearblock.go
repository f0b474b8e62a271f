package linearblock

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nathanhack/syndromedecoding/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

//LinearBlock contains the systematic generator matrix G=[I|A] (k x n) and
// the parity check matrix H=[A;I] (n x (n-k)) derived from it.
type LinearBlock struct {
	G mat.SparseMat
	H mat.SparseMat
}

//// For JSON unmarshalling
type linearblock struct {
	G mat.CSRMatrix
	H mat.CSRMatrix
}

//UnmarshalJSON is needed because LinearBlock has a mat.SparseMat and requires special handling
func (l *LinearBlock) UnmarshalJSON(bytes []byte) error {
	var lb linearblock
	err := json.Unmarshal(bytes, &lb)
	if err != nil {
		return err
	}

	l.G = &lb.G
	l.H = &lb.H
	return nil
}

//Encode take in a message and encodes it using the linear block, returning a codeword
func (l *LinearBlock) Encode(message mat.SparseVector) (codeword mat.SparseVector) {
	return internal.MulMod2(message, l.G)
}

//Syndrome returns received*H, it is zero for every codeword
func (l *LinearBlock) Syndrome(received mat.SparseVector) (syndrome mat.SparseVector) {
	return internal.MulMod2(received, l.H)
}

//Message returns the message contained in a codeword, for a systematic code these are the first k bits
func (l *LinearBlock) Message(codeword mat.SparseVector) (message mat.SparseVector) {
	if codeword.Len() != l.CodewordLength() {
		panic(fmt.Errorf("%w: codeword length == %v required but found %v", ErrDimensionMismatch, l.CodewordLength(), codeword.Len()))
	}
	return codeword.Slice(0, l.MessageLength())
}

func (l *LinearBlock) MessageLength() int {
	k, _ := l.G.Dims()
	return k
}
func (l *LinearBlock) ParitySymbols() int {
	_, m := l.H.Dims()
	return m
}
func (l *LinearBlock) CodewordLength() int {
	_, n := l.G.Dims()
	return n
}
func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

//Validate tests the systematic structure: G=[I|*], H=[*;I] and G*H=0.
// The identity block gives G full rank k.
func (l *LinearBlock) Validate() bool {
	if l.G == nil || l.H == nil {
		return false
	}
	k, n := l.G.Dims()
	hRows, m := l.H.Dims()
	if hRows != n || m != n-k {
		return false
	}

	if !l.G.Slice(0, 0, k, k).Equals(internal.Identity(k)) {
		return false
	}
	if !l.H.Slice(k, 0, m, m).Equals(internal.Identity(m)) {
		return false
	}
	return internal.ValidateGH(l.G, l.H)
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nG:\n")
	buf.WriteString(l.G.String())
	buf.WriteString("\nH:\n")
	buf.WriteString(l.H.String())
	buf.WriteString("\n}\n")
	return buf.String()
}
