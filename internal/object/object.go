// Package object implements the compiled binary file format: an 8-byte
// little-endian header (origin, entry) followed by the word stream, plus
// a hexdump renderer used by the exec command's --dump flag.
package object

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Frame mirrors the assembler's compiled frame, ready for encoding.
type Frame struct {
	Origin uint32
	Entry  uint32
	Words  []uint32
}

// Encode writes f to w as an 8-byte header (origin, entry) followed by
// the word stream, all little-endian.
func Encode(w io.Writer, f Frame) error {
	bw := bufio.NewWriter(w)

	var hdr [8]byte

	binary.LittleEndian.PutUint32(hdr[0:4], f.Origin)
	binary.LittleEndian.PutUint32(hdr[4:8], f.Entry)

	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, word := range f.Words {
		var buf [4]byte

		binary.LittleEndian.PutUint32(buf[:], word)

		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("writing word %d: %w", i, err)
		}
	}

	return bw.Flush()
}

// Decode reads a current-format (8-byte header) object file.
func Decode(r io.Reader) (Frame, error) {
	var hdr [8]byte

	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, fmt.Errorf("reading header: %w", err)
	}

	f := Frame{
		Origin: binary.LittleEndian.Uint32(hdr[0:4]),
		Entry:  binary.LittleEndian.Uint32(hdr[4:8]),
	}

	words, err := readWords(r)
	if err != nil {
		return Frame{}, err
	}

	f.Words = words

	return f, nil
}

// DecodeLegacy reads the earlier single-word-header format (origin
// only); entry is set equal to origin. The two header shapes cannot be
// told apart from file content alone, so callers select this path
// explicitly (the exec command's --legacy flag).
func DecodeLegacy(r io.Reader) (Frame, error) {
	var hdr [4]byte

	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, fmt.Errorf("reading legacy header: %w", err)
	}

	origin := binary.LittleEndian.Uint32(hdr[:])

	words, err := readWords(r)
	if err != nil {
		return Frame{}, err
	}

	return Frame{Origin: origin, Entry: origin, Words: words}, nil
}

func readWords(r io.Reader) ([]uint32, error) {
	var words []uint32

	buf := make([]byte, 4)

	for {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading word %d: %w", len(words), err)
		}

		words = append(words, binary.LittleEndian.Uint32(buf))
	}

	return words, nil
}
