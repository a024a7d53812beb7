package parser

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestColumnToLetters(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{16384, "XFD"},
		{0, ""},
		{-3, ""},
	}

	for _, tt := range tests {
		result := ColumnToLetters(tt.input)
		if result != tt.expected {
			t.Errorf("ColumnToLetters(%d) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestColumnFromLetters(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"A", 1, false},
		{"z", 26, false},
		{"aA", 27, false},
		{"ZZ", 702, false},
		{"AAA", 703, false},
		{"xfd", 16384, false},
		{"", 0, true},
		{"A1", 0, true},
		{"$A", 0, true},
		{"ÄB", 0, true},
		{"ZZZZZZZZ", 0, true},
	}

	for _, tt := range tests {
		result, err := ColumnFromLetters(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidColumn) {
				t.Errorf("ColumnFromLetters(%q) error = %v, expected ErrInvalidColumn", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColumnFromLetters(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ColumnFromLetters(%q) = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestColumnLettersInverse(t *testing.T) {
	for n := 1; n <= 200000; n++ {
		got, err := ColumnFromLetters(ColumnToLetters(n))
		if err != nil || got != n {
			t.Fatalf("ColumnFromLetters(ColumnToLetters(%d)) = %d, %v", n, got, err)
		}
	}
}

func TestColumnToLettersMatchesExcelize(t *testing.T) {
	for n := 1; n <= excelize.MaxColumns; n++ {
		expected, err := excelize.ColumnNumberToName(n)
		if err != nil {
			t.Fatalf("ColumnNumberToName(%d) failed: %v", n, err)
		}
		if got := ColumnToLetters(n); got != expected {
			t.Fatalf("ColumnToLetters(%d) = %q, expected %q", n, got, expected)
		}
	}
}
