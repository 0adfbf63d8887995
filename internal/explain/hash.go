package explain

import "unicode/utf16"

// StableHash is the reproducibility primitive for every explanation
// heuristic: a 32-bit polynomial hash h = h*31 + unit over the string's
// UTF-16 code units with two's-complement wraparound, absolute value of the
// final result. The recurrence and overflow behavior must not change —
// explanations are required to be bit-identical across processes.
func StableHash(s string) int {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// firstFifty returns the leading 50 UTF-16 code units of s, used as the
// text fingerprint mixed into token hashes.
func firstFifty(s string) string {
	units := utf16.Encode([]rune(s))
	if len(units) > 50 {
		units = units[:50]
	}
	return string(utf16.Decode(units))
}

// utf16Len counts UTF-16 code units, the length measure the heuristics use.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
