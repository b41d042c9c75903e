package object

// dump.go renders a hex + ASCII view of memory, grounded on the
// teacher's checksum-driven, fixed-width record style (the encoding
// package's Intel-Hex writer) adapted to this format's plain binary wire
// format -- a hexdump, not a re-encoding.

import (
	"fmt"
	"io"
)

const wordsPerLine = 8

// Dump writes a hex+ASCII view of mem to w: offset, up to wordsPerLine
// hex words, then an ASCII gutter with '.' standing in for non-printable
// scalars. ssize is the stack region size, used only to mark with '|' the
// line whose offset is the first stack cell; no line is marked when the
// stack region does not begin on a line boundary.
func Dump(w io.Writer, mem []uint32, ssize int) error {
	stackStart := len(mem) - ssize

	for off := 0; off < len(mem); off += wordsPerLine {
		end := off + wordsPerLine
		if end > len(mem) {
			end = len(mem)
		}

		marker := " "
		if off == stackStart {
			marker = "|"
		}

		if _, err := fmt.Fprintf(w, "%s%08x:", marker, off); err != nil {
			return err
		}

		for i := off; i < end; i++ {
			if _, err := fmt.Fprintf(w, " %08x", mem[i]); err != nil {
				return err
			}
		}

		for i := end; i < off+wordsPerLine; i++ {
			if _, err := io.WriteString(w, "          "); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "  "); err != nil {
			return err
		}

		for i := off; i < end; i++ {
			if err := writeGutterRune(w, mem[i]); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

func writeGutterRune(w io.Writer, v uint32) error {
	r := rune(v)

	if v > 0x10FFFF || r < 0x20 || r > 0x7E {
		_, err := io.WriteString(w, ".")

		return err
	}

	_, err := fmt.Fprintf(w, "%c", r)

	return err
}
