package asm

// pack.go implements data-section packing: byte/word/dword values into
// the 32-bit word stream, per spec.md §4.6 "Data packing".

import (
	"fmt"

	"github.com/kestrelvm/kestrel/internal/token"
)

// packData converts a DataDef's typed values into the words it occupies
// in the final binary.
func packData(def token.DataDef) ([]uint32, error) {
	switch def.Type {
	case token.Byte:
		return packBytes(def)
	case token.Word:
		return packWords(def)
	case token.DoubleWord:
		return packDoubleWords(def)
	default:
		return nil, fmt.Errorf("data %q: unknown type %s", def.Name, def.Type)
	}
}

func packBytes(def token.DataDef) ([]uint32, error) {
	var bs []byte

	for _, v := range def.Values {
		if v.IsStr {
			bs = append(bs, []byte(v.Str)...)

			continue
		}

		if v.Number < 0 || v.Number > 0xFF {
			return nil, fmt.Errorf("%w: data %q value %d exceeds byte width",
				ErrDataValueOverflow, def.Name, v.Number)
		}

		bs = append(bs, byte(v.Number))
	}

	words := make([]uint32, 0, (len(bs)+3)/4)

	for i := 0; i < len(bs); i += 4 {
		var w uint32

		for j := 0; j < 4; j++ {
			w <<= 8

			if i+j < len(bs) {
				w |= uint32(bs[i+j])
			}
		}

		words = append(words, w)
	}

	return words, nil
}

func packWords(def token.DataDef) ([]uint32, error) {
	var hs []uint16

	for _, v := range def.Values {
		if v.IsStr {
			for _, r := range v.Str {
				if r < 0 || r > 0xFFFF {
					return nil, fmt.Errorf("%w: data %q rune %q exceeds word width",
						ErrDataValueOverflow, def.Name, r)
				}

				hs = append(hs, uint16(r))
			}

			continue
		}

		if v.Number < 0 || v.Number > 0xFFFF {
			return nil, fmt.Errorf("%w: data %q value %d exceeds word width",
				ErrDataValueOverflow, def.Name, v.Number)
		}

		hs = append(hs, uint16(v.Number))
	}

	words := make([]uint32, 0, (len(hs)+1)/2)

	for i := 0; i < len(hs); i += 2 {
		w := uint32(hs[i]) << 16

		if i+1 < len(hs) {
			w |= uint32(hs[i+1])
		}

		words = append(words, w)
	}

	return words, nil
}

func packDoubleWords(def token.DataDef) ([]uint32, error) {
	var words []uint32

	for _, v := range def.Values {
		if v.IsStr {
			for _, r := range v.Str {
				words = append(words, uint32(r))
			}

			continue
		}

		if v.Number < 0 || v.Number > 0xFFFFFFFF {
			return nil, fmt.Errorf("%w: data %q value %d exceeds dword width",
				ErrDataValueOverflow, def.Name, v.Number)
		}

		words = append(words, uint32(v.Number))
	}

	return words, nil
}
