package asm

import (
	"errors"
	"testing"

	"github.com/kestrelvm/kestrel/internal/token"
)

func TestPackBytes(tt *testing.T) {
	tt.Parallel()

	def := token.DataDef{
		Name: "greeting",
		Type: token.Byte,
		Values: []token.Value{
			{Str: "AB", IsStr: true},
			{Number: 3},
		},
	}

	words, err := packData(def)
	if err != nil {
		tt.Fatalf("packData: %v", err)
	}

	// bytes: 'A','B',3 -- packed big-endian, 4 per word, zero-padded.
	want := []uint32{0x41420300}

	if len(words) != len(want) || words[0] != want[0] {
		tt.Errorf("packBytes = %#x, want %#x", words, want)
	}
}

func TestPackBytesOverflow(tt *testing.T) {
	tt.Parallel()

	def := token.DataDef{Name: "x", Type: token.Byte, Values: []token.Value{{Number: 256}}}

	if _, err := packData(def); !errors.Is(err, ErrDataValueOverflow) {
		tt.Errorf("packData(256 as byte): want ErrDataValueOverflow, got %v", err)
	}
}

func TestPackWords(tt *testing.T) {
	tt.Parallel()

	def := token.DataDef{
		Name: "nums",
		Type: token.Word,
		Values: []token.Value{
			{Number: 0x1234},
			{Number: 0x5678},
			{Number: 0x9999},
		},
	}

	words, err := packData(def)
	if err != nil {
		tt.Fatalf("packData: %v", err)
	}

	want := []uint32{0x12345678, 0x99990000}

	if len(words) != len(want) {
		tt.Fatalf("packWords len = %d, want %d", len(words), len(want))
	}

	for i, w := range want {
		if words[i] != w {
			tt.Errorf("packWords[%d] = %#x, want %#x", i, words[i], w)
		}
	}
}

func TestPackWordsOverflow(tt *testing.T) {
	tt.Parallel()

	def := token.DataDef{Name: "x", Type: token.Word, Values: []token.Value{{Number: 0x10000}}}

	if _, err := packData(def); !errors.Is(err, ErrDataValueOverflow) {
		tt.Errorf("packData(0x10000 as word): want ErrDataValueOverflow, got %v", err)
	}
}

func TestPackDoubleWords(tt *testing.T) {
	tt.Parallel()

	def := token.DataDef{
		Name: "vals",
		Type: token.DoubleWord,
		Values: []token.Value{
			{Number: 42},
			{Str: "Hi", IsStr: true},
		},
	}

	words, err := packData(def)
	if err != nil {
		tt.Fatalf("packData: %v", err)
	}

	want := []uint32{42, 'H', 'i'}

	if len(words) != len(want) {
		tt.Fatalf("packDoubleWords len = %d, want %d", len(words), len(want))
	}

	for i, w := range want {
		if words[i] != w {
			tt.Errorf("packDoubleWords[%d] = %#x, want %#x", i, words[i], w)
		}
	}
}

func TestPackDataUnknownType(tt *testing.T) {
	tt.Parallel()

	def := token.DataDef{Name: "x", Type: token.DataType(99)}

	if _, err := packData(def); err == nil {
		tt.Errorf("packData with unknown type: want error, got nil")
	}
}
