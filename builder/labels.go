// Package builder provides state label schemes used when printing chains.
package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelFn names a state from its zero-based index.
// It must be pure: the same idx always yields the same label.
type LabelFn func(idx int) string

// DecimalLabel returns the decimal string of idx, e.g. 0→"0", 42→"42".
// Never panics.
func DecimalLabel(idx int) string {
	return strconv.Itoa(idx)
}

// ExcelColumnLabel returns the spreadsheet-column name for idx, e.g. 0→"A",
// 25→"Z", 26→"AA". Panics if idx < 0.
// Complexity: O(log₂₆ idx).
func ExcelColumnLabel(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnLabel: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// PrefixLabel returns prefix + decimal index, e.g. "s0", "s1", ...
// The returned LabelFn panics if idx < 0.
func PrefixLabel(prefix string) LabelFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("PrefixLabel: idx must be ≥ 0, got %d", idx))
		}

		return prefix + strconv.Itoa(idx)
	}
}

// LabelScheme resolves a scheme name ("decimal", "excel" or "prefix:<p>")
// to a LabelFn. Unknown names return an error.
func LabelScheme(name string) (LabelFn, error) {
	switch name {
	case "", "decimal":
		return DecimalLabel, nil
	case "excel":
		return ExcelColumnLabel, nil
	}
	if p, ok := strings.CutPrefix(name, "prefix:"); ok {
		return PrefixLabel(p), nil
	}

	return nil, fmt.Errorf("builder: unknown label scheme %q", name)
}

// Labels returns fn(0..n-1).
func Labels(n int, fn LabelFn) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fn(i)
	}

	return out
}
