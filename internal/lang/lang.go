// Package lang is the textual front end: a line-oriented scanner that
// turns kestrel assembly source into the token stream package asm
// consumes. It performs no symbol resolution of its own.
package lang

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/kestrelvm/kestrel/internal/token"
)

// SyntaxError reports a line the scanner could not classify.
type SyntaxError struct {
	File string
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: syntax error: %q", e.File, e.Line, e.Text)
}

var (
	space = `[\t ]*`

	commentPattern     = regexp.MustCompile(`;.*$`)
	metaOrgPattern     = regexp.MustCompile(`^@ORG` + space + `(\S+)` + space + `$`)
	metaIncludePattern = regexp.MustCompile(`^@INCLUDE` + space + `"([^"]*)"` + space + `$`)
	sectionPattern     = regexp.MustCompile(`^#(text|data)` + space + `$`)
	labelPattern       = regexp.MustCompile(`^\.([A-Za-z_][A-Za-z0-9_]*):` + space + `$`)
	dataDefPattern     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):` + space + `(BYTE|WORD|DWORD)` + space + `(.*)$`)
	instructionPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)(?:` + space + `(.+))?$`)
	regPattern         = regexp.MustCompile(`^[rR]([0-7])$`)
	addrPattern        = regexp.MustCompile(`^\[([^\]+]+)(?:\+([^\]]+))?\]$`)
)

// Scan reads source text from r and returns the tokens it recognizes. The
// name is used only for diagnostics.
func Scan(name string, r io.Reader) ([]token.Token, error) {
	var toks []token.Token

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := commentPattern.ReplaceAllString(scanner.Text(), "")
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		tok, err := scanLine(line)
		if err != nil {
			return nil, &SyntaxError{File: name, Line: lineNo, Text: line}
		}

		tok.Line = lineNo
		toks = append(toks, tok)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return toks, nil
}

func scanLine(line string) (token.Token, error) {
	switch {
	case metaOrgPattern.MatchString(line):
		m := metaOrgPattern.FindStringSubmatch(line)

		n, err := parseInt(m[1])
		if err != nil {
			return token.Token{}, err
		}

		return token.Token{Kind: token.KindMetaOrg, Number: n}, nil

	case metaIncludePattern.MatchString(line):
		m := metaIncludePattern.FindStringSubmatch(line)

		return token.Token{Kind: token.KindMetaInclude, Path: m[1]}, nil

	case sectionPattern.MatchString(line):
		m := sectionPattern.FindStringSubmatch(line)

		return token.Token{Kind: token.KindSection, Text: m[1]}, nil

	case labelPattern.MatchString(line):
		m := labelPattern.FindStringSubmatch(line)

		return token.Token{Kind: token.KindLabel, Text: m[1]}, nil

	case dataDefPattern.MatchString(line):
		m := dataDefPattern.FindStringSubmatch(line)

		def, err := scanDataDef(m[1], m[2], m[3])
		if err != nil {
			return token.Token{}, err
		}

		return token.Token{Kind: token.KindDataDef, Data: def}, nil

	case instructionPattern.MatchString(line):
		m := instructionPattern.FindStringSubmatch(line)

		cmd, err := scanCommand(m[1], m[2])
		if err != nil {
			return token.Token{}, err
		}

		return token.Token{Kind: token.KindCommand, Command: cmd}, nil

	default:
		return token.Token{}, fmt.Errorf("unrecognized line")
	}
}

func scanDataDef(name, typ, rest string) (token.DataDef, error) {
	var dt token.DataType

	switch typ {
	case "BYTE":
		dt = token.Byte
	case "WORD":
		dt = token.Word
	case "DWORD":
		dt = token.DoubleWord
	default:
		return token.DataDef{}, fmt.Errorf("unknown data type %q", typ)
	}

	var values []token.Value

	for _, field := range splitOperands(rest) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		if strings.HasPrefix(field, `"`) {
			s, err := strconv.Unquote(field)
			if err != nil {
				return token.DataDef{}, fmt.Errorf("bad string literal %q: %w", field, err)
			}

			values = append(values, token.Value{Str: s, IsStr: true})

			continue
		}

		n, err := parseInt(field)
		if err != nil {
			return token.DataDef{}, fmt.Errorf("bad data value %q: %w", field, err)
		}

		values = append(values, token.Value{Number: n})
	}

	return token.DataDef{Name: name, Type: dt, Values: values}, nil
}

func scanCommand(op, rest string) (token.Command, error) {
	cmd := token.Command{Op: token.Mnemonic(strings.ToUpper(op))}

	for _, field := range splitOperands(rest) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		operand, err := scanOperand(field)
		if err != nil {
			return token.Command{}, err
		}

		cmd.Operands = append(cmd.Operands, operand)
	}

	return cmd, nil
}

func scanOperand(field string) (token.Operand, error) {
	if m := regPattern.FindStringSubmatch(field); m != nil {
		n, _ := strconv.Atoi(m[1])

		return token.Operand{Kind: token.OperandReg, Reg: n}, nil
	}

	if m := addrPattern.FindStringSubmatch(field); m != nil {
		base := strings.TrimSpace(m[1])
		offset := strings.TrimSpace(m[2])

		op := token.Operand{Kind: token.OperandAddr}
		if n, err := parseInt(base); err == nil {
			op.BaseConst = n
		} else {
			op.Name = base
		}

		if offset == "" {
			return op, nil
		}

		if rm := regPattern.FindStringSubmatch(offset); rm != nil {
			n, _ := strconv.Atoi(rm[1])
			op.Kind = token.OperandAddrOffsetReg
			op.Reg = n

			return op, nil
		}

		k, err := parseInt(offset)
		if err != nil {
			return token.Operand{}, fmt.Errorf("bad offset %q: %w", offset, err)
		}

		op.Kind = token.OperandAddrOffsetConst
		op.Const = k

		return op, nil
	}

	if n, err := parseInt(field); err == nil {
		return token.Operand{Kind: token.OperandConst, Const: n}, nil
	}

	if field[0] == '.' {
		return token.Operand{Kind: token.OperandLabel, Name: field[1:]}, nil
	}

	return token.Operand{Kind: token.OperandData, Name: field}, nil
}

// splitOperands splits a comma-separated operand list, tolerating
// surrounding whitespace.
func splitOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return strings.Split(s, ",")
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 64)
}
