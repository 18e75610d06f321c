package render

// BrailleBase is U+2800, the empty braille pattern
const BrailleBase rune = 0x2800

// Glyph returns the braille rune for a dot mask; the mapping is a bijection over all 256 masks
func Glyph(mask uint8) rune {
	return BrailleBase + rune(mask)
}

// MaskOf is the inverse of Glyph, false for runes outside the braille block
func MaskOf(r rune) (uint8, bool) {
	if r < BrailleBase || r > BrailleBase+0xFF {
		return 0, false
	}
	return uint8(r - BrailleBase), true
}
