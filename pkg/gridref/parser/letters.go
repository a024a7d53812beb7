// Package parser converts reference text in A1 notation to and from the
// typed ranges in package models.
package parser

import (
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// ColumnToLetters converts a 1-based column number to bijective base-26
// letters: 1 -> A, 26 -> Z, 27 -> AA. It returns "" for n < 1.
func ColumnToLetters(n int) string {
	if n < 1 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// ColumnFromLetters is the case-insensitive inverse of ColumnToLetters.
// Columns at or beyond models.Unbounded are rejected.
func ColumnFromLetters(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidColumn
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			n = n*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			n = n*26 + int(c-'a') + 1
		default:
			return 0, ErrInvalidColumn
		}
		if n >= models.Unbounded {
			return 0, ErrInvalidColumn
		}
	}
	return n, nil
}
