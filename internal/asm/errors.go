package asm

import "errors"

var (
	// ErrUnknownSection is returned for a Section token naming anything
	// other than "text" or "data".
	ErrUnknownSection = errors.New("unknown section")

	// ErrSectionMismatch is returned for a token only valid in one
	// section appearing in the other (or before any section is set).
	ErrSectionMismatch = errors.New("section mismatch")

	// ErrUndefinedLabel is returned when a label reference has no
	// matching Label token anywhere in the stream.
	ErrUndefinedLabel = errors.New("undefined label")

	// ErrUndefinedData is returned when a data reference has no
	// matching DataDef token anywhere in the stream.
	ErrUndefinedData = errors.New("undefined data")

	// ErrDataValueOverflow is returned when a data value exceeds the
	// range its declared width can hold.
	ErrDataValueOverflow = errors.New("data value overflow")

	// ErrOriginSentinel is returned when a Meta.Org directive sets the
	// origin to the safecall sentinel value. Resolves the open question
	// in spec.md's design notes by rejecting the collision outright
	// rather than tracking a discriminator bit alongside call frames.
	ErrOriginSentinel = errors.New("origin collides with safecall sentinel")
)
