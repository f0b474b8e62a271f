// Package alphabet maps text symbols to the fixed length messages a code encodes.
package alphabet

import (
	mat "github.com/nathanhack/sparsemat"
)

// LetterBits is the message length of a letter.
const LetterBits = 8

// Letters returns the 8 bit ASCII pattern (most significant bit first) for a-z and A-Z.
func Letters() map[rune]mat.SparseVector {
	result := make(map[rune]mat.SparseVector, 52)
	for r := 'a'; r <= 'z'; r++ {
		result[r] = bits(r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		result[r] = bits(r)
	}
	return result
}

// IsLetter reports whether r is in Letters.
func IsLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// StripNonLetters drops every rune that is not in Letters.
func StripNonLetters(text string) []rune {
	result := make([]rune, 0, len(text))
	for _, r := range text {
		if IsLetter(r) {
			result = append(result, r)
		}
	}
	return result
}

func bits(r rune) mat.SparseVector {
	v := mat.CSRVec(LetterBits)
	for i := 0; i < LetterBits; i++ {
		if (r>>(LetterBits-1-i))&1 == 1 {
			v.Set(i, 1)
		}
	}
	return v
}
