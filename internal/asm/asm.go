package asm

import (
	"fmt"

	"github.com/kestrelvm/kestrel/internal/log"
	"github.com/kestrelvm/kestrel/internal/token"
	"github.com/kestrelvm/kestrel/internal/vm"
)

// Frame is the assembler's compiled output: an origin, an entry point,
// and the word stream to load at that origin.
type Frame struct {
	Origin uint32
	Entry  uint32
	Words  []uint32
}

type dataBlob struct {
	name  string
	words []uint32
}

type patch struct {
	pos    int
	kind   refKind
	name   string
	offset int64
}

// Assembler accumulates state across one Assemble call. It is not
// reused between assemblies.
type Assembler struct {
	origin  uint32
	section string

	text []uint32

	labels  map[string]int
	dataDef []dataBlob

	patches []patch

	log *log.Logger
}

// New creates an assembler.
func New() *Assembler {
	return &Assembler{
		labels: make(map[string]int),
		log:    log.DefaultLogger(),
	}
}

// Assemble runs the two-pass layout described in spec.md §4.6 over tokens
// and returns the compiled Frame.
func Assemble(tokens []token.Token) (Frame, error) {
	a := New()

	return a.assemble(tokens)
}

func (a *Assembler) assemble(tokens []token.Token) (Frame, error) {
	for _, t := range tokens {
		if err := a.scanToken(t); err != nil {
			return Frame{}, err
		}
	}

	dataAddr := make(map[string]uint32, len(a.dataDef))

	for _, d := range a.dataDef {
		dataAddr[d.name] = a.origin + uint32(len(a.text))
		a.text = append(a.text, d.words...)
	}

	for _, p := range a.patches {
		v, err := a.resolve(p, dataAddr)
		if err != nil {
			return Frame{}, err
		}

		a.text[p.pos] = v
	}

	entry := a.origin

	return Frame{Origin: a.origin, Entry: entry, Words: a.text}, nil
}

func (a *Assembler) resolve(p patch, dataAddr map[string]uint32) (uint32, error) {
	switch p.kind {
	case refLabel:
		idx, ok := a.labels[p.name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedLabel, p.name)
		}

		return a.origin + uint32(idx) + uint32(p.offset), nil
	case refData:
		addr, ok := dataAddr[p.name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedData, p.name)
		}

		return uint32(int64(addr) + p.offset), nil
	case refSymbol:
		if addr, ok := dataAddr[p.name]; ok {
			return uint32(int64(addr) + p.offset), nil
		}

		if idx, ok := a.labels[p.name]; ok {
			return a.origin + uint32(idx) + uint32(p.offset), nil
		}

		return 0, fmt.Errorf("%w: %s", ErrUndefinedData, p.name)
	default:
		return 0, fmt.Errorf("internal error: unresolved literal patch")
	}
}

func (a *Assembler) scanToken(t token.Token) error {
	switch t.Kind {
	case token.KindMetaOrg:
		origin := uint32(t.Number)
		if vm.Word(origin) == vm.SafecallSentinel {
			return fmt.Errorf("%w: 0x%X", ErrOriginSentinel, origin)
		}

		a.origin = origin

		return nil

	case token.KindMetaInclude:
		// Carries no core semantics; reserved per spec.md §3.
		return nil

	case token.KindSection:
		switch t.Text {
		case token.SectionText, token.SectionData:
			a.section = t.Text

			return nil
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSection, t.Text)
		}

	case token.KindLabel:
		if a.section != token.SectionText {
			return fmt.Errorf("%w: label %q outside text section", ErrSectionMismatch, t.Text)
		}

		a.labels[t.Text] = len(a.text)

		return nil

	case token.KindDataDef:
		if a.section != token.SectionData {
			return fmt.Errorf("%w: data %q outside data section", ErrSectionMismatch, t.Data.Name)
		}

		words, err := packData(t.Data)
		if err != nil {
			return err
		}

		a.dataDef = append(a.dataDef, dataBlob{name: t.Data.Name, words: words})

		return nil

	case token.KindCommand:
		if a.section != token.SectionText {
			return fmt.Errorf("%w: command %q outside text section", ErrSectionMismatch, t.Command.Op)
		}

		return a.emit(t.Command)

	default:
		return fmt.Errorf("unrecognized token kind %s", t.Kind)
	}
}

func (a *Assembler) emit(cmd token.Command) error {
	specs, err := emitCommand(cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Op, err)
	}

	for _, spec := range specs {
		pos := len(a.text)
		a.text = append(a.text, spec.value)

		if spec.kind != refNone {
			a.patches = append(a.patches, patch{pos: pos, kind: spec.kind, name: spec.name, offset: spec.offset})
		}
	}

	return nil
}
