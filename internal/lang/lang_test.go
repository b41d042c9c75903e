package lang

import (
	"strings"
	"testing"

	"github.com/kestrelvm/kestrel/internal/token"
)

func scanOne(tt *testing.T, src string) token.Token {
	tt.Helper()

	toks, err := Scan("test", strings.NewReader(src))
	if err != nil {
		tt.Fatalf("Scan(%q): %v", src, err)
	}

	if len(toks) != 1 {
		tt.Fatalf("Scan(%q) = %d tokens, want 1", src, len(toks))
	}

	return toks[0]
}

func TestScanCommentsAndBlankLines(tt *testing.T) {
	tt.Parallel()

	toks, err := Scan("test", strings.NewReader("; a comment\n\n   \n@ORG 10 ; trailing comment\n"))
	if err != nil {
		tt.Fatalf("Scan: %v", err)
	}

	if len(toks) != 1 {
		tt.Fatalf("Scan = %d tokens, want 1 (comments/blanks stripped)", len(toks))
	}

	if toks[0].Kind != token.KindMetaOrg || toks[0].Number != 10 {
		tt.Errorf("tok = %+v, want KindMetaOrg Number=10", toks[0])
	}
}

func TestScanMetaOrg(tt *testing.T) {
	tt.Parallel()

	tok := scanOne(tt, "@ORG 0x100")

	if tok.Kind != token.KindMetaOrg {
		tt.Fatalf("Kind = %v, want KindMetaOrg", tok.Kind)
	}

	if tok.Number != 0x100 {
		tt.Errorf("Number = %d, want 256", tok.Number)
	}
}

func TestScanMetaInclude(tt *testing.T) {
	tt.Parallel()

	tok := scanOne(tt, `@INCLUDE "lib/util.asm"`)

	if tok.Kind != token.KindMetaInclude || tok.Path != "lib/util.asm" {
		tt.Errorf("tok = %+v, want KindMetaInclude Path=lib/util.asm", tok)
	}
}

func TestScanSection(tt *testing.T) {
	tt.Parallel()

	tt.Run("text", func(tt *testing.T) {
		tok := scanOne(tt, "#text")
		if tok.Kind != token.KindSection || tok.Text != token.SectionText {
			tt.Errorf("tok = %+v, want KindSection text", tok)
		}
	})

	tt.Run("data", func(tt *testing.T) {
		tok := scanOne(tt, "#data")
		if tok.Kind != token.KindSection || tok.Text != token.SectionData {
			tt.Errorf("tok = %+v, want KindSection data", tok)
		}
	})
}

func TestScanLabel(tt *testing.T) {
	tt.Parallel()

	tok := scanOne(tt, ".loop_top:")

	if tok.Kind != token.KindLabel || tok.Text != "loop_top" {
		tt.Errorf("tok = %+v, want KindLabel loop_top", tok)
	}
}

func TestScanDataDef(tt *testing.T) {
	tt.Parallel()

	tt.Run("bytes with string and number", func(tt *testing.T) {
		tok := scanOne(tt, `greeting: BYTE "Hi", 0`)

		if tok.Kind != token.KindDataDef {
			tt.Fatalf("Kind = %v, want KindDataDef", tok.Kind)
		}

		d := tok.Data
		if d.Name != "greeting" || d.Type != token.Byte {
			tt.Fatalf("Data = %+v, want name greeting type Byte", d)
		}

		if len(d.Values) != 2 || !d.Values[0].IsStr || d.Values[0].Str != "Hi" || d.Values[1].Number != 0 {
			tt.Errorf("Values = %+v, want [Hi, 0]", d.Values)
		}
	})

	tt.Run("words", func(tt *testing.T) {
		tok := scanOne(tt, "nums: WORD 1, 2, 3")

		d := tok.Data
		if d.Type != token.Word || len(d.Values) != 3 {
			tt.Fatalf("Data = %+v, want type Word, 3 values", d)
		}
	})

	tt.Run("dwords", func(tt *testing.T) {
		tok := scanOne(tt, "count: DWORD 42")

		d := tok.Data
		if d.Type != token.DoubleWord || len(d.Values) != 1 || d.Values[0].Number != 42 {
			tt.Errorf("Data = %+v, want type DoubleWord, [42]", d)
		}
	})
}

func TestScanCommandOperandShapes(tt *testing.T) {
	tt.Parallel()

	tt.Run("register", func(tt *testing.T) {
		tok := scanOne(tt, "PUSH r3")
		cmd := tok.Command

		if cmd.Op != token.MPush || len(cmd.Operands) != 1 {
			tt.Fatalf("Command = %+v", cmd)
		}

		op := cmd.Operands[0]
		if op.Kind != token.OperandReg || op.Reg != 3 {
			tt.Errorf("operand = %+v, want OperandReg 3", op)
		}
	})

	tt.Run("decimal literal", func(tt *testing.T) {
		op := scanOne(tt, "PUSH 42").Command.Operands[0]
		if op.Kind != token.OperandConst || op.Const != 42 {
			tt.Errorf("operand = %+v, want OperandConst 42", op)
		}
	})

	tt.Run("hex literal", func(tt *testing.T) {
		op := scanOne(tt, "PUSH 0xFF").Command.Operands[0]
		if op.Kind != token.OperandConst || op.Const != 0xFF {
			tt.Errorf("operand = %+v, want OperandConst 255", op)
		}
	})

	tt.Run("label reference", func(tt *testing.T) {
		op := scanOne(tt, "JUMP .done").Command.Operands[0]
		if op.Kind != token.OperandLabel || op.Name != "done" {
			tt.Errorf("operand = %+v, want OperandLabel done", op)
		}
	})

	tt.Run("bare data reference", func(tt *testing.T) {
		op := scanOne(tt, "PUSH total").Command.Operands[0]
		if op.Kind != token.OperandData || op.Name != "total" {
			tt.Errorf("operand = %+v, want OperandData total", op)
		}
	})

	tt.Run("bracket symbolic base", func(tt *testing.T) {
		op := scanOne(tt, "PUSH [total]").Command.Operands[0]
		if op.Kind != token.OperandAddr || op.Name != "total" {
			tt.Errorf("operand = %+v, want OperandAddr total", op)
		}
	})

	tt.Run("bracket numeric base", func(tt *testing.T) {
		op := scanOne(tt, "PUSH [100]").Command.Operands[0]
		if op.Kind != token.OperandAddr || op.BaseConst != 100 || op.Name != "" {
			tt.Errorf("operand = %+v, want OperandAddr BaseConst=100 Name empty", op)
		}
	})

	tt.Run("bracket base plus constant offset", func(tt *testing.T) {
		op := scanOne(tt, "PUSH [total+4]").Command.Operands[0]
		if op.Kind != token.OperandAddrOffsetConst || op.Name != "total" || op.Const != 4 {
			tt.Errorf("operand = %+v, want OperandAddrOffsetConst total+4", op)
		}
	})

	tt.Run("bracket base plus register offset", func(tt *testing.T) {
		op := scanOne(tt, "PUSH [total+r2]").Command.Operands[0]
		if op.Kind != token.OperandAddrOffsetReg || op.Name != "total" || op.Reg != 2 {
			tt.Errorf("operand = %+v, want OperandAddrOffsetReg total+r2", op)
		}
	})

	tt.Run("multiple operands", func(tt *testing.T) {
		cmd := scanOne(tt, "MOVE r0, r1").Command
		if len(cmd.Operands) != 2 {
			tt.Fatalf("Operands = %+v, want 2", cmd.Operands)
		}

		if cmd.Operands[0].Reg != 0 || cmd.Operands[1].Reg != 1 {
			tt.Errorf("Operands = %+v, want r0, r1", cmd.Operands)
		}
	})

	tt.Run("no operands", func(tt *testing.T) {
		cmd := scanOne(tt, "TERM").Command
		if cmd.Op != token.MTerminate || len(cmd.Operands) != 0 {
			tt.Errorf("Command = %+v, want TERM with no operands", cmd)
		}
	})
}

func TestScanSyntaxError(tt *testing.T) {
	tt.Parallel()

	_, err := Scan("bad.asm", strings.NewReader("123: nonsense\n"))
	if err == nil {
		tt.Fatal("Scan: want error, got nil")
	}

	se, ok := err.(*SyntaxError)
	if !ok {
		tt.Fatalf("err = %T, want *SyntaxError", err)
	}

	if se.File != "bad.asm" || se.Line != 1 {
		tt.Errorf("SyntaxError = %+v, want File=bad.asm Line=1", se)
	}
}
