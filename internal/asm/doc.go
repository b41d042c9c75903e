// Package asm implements the two-pass assembler: it consumes a token
// stream already parsed from source (package token) and produces a
// compiled Frame -- origin, entry point, and a flat word stream -- ready
// for the object package to encode.
//
// Layout proceeds in one scan over the tokens, emitting instruction
// headers and operand words with zero placeholders for any forward
// reference (a label, a data identifier, or an address computed from
// one), and recording a patch for each placeholder. Once the scan is
// done, data blobs are appended to the word buffer and their addresses
// recorded, then every patch is resolved against the now-complete label
// and data tables.
package asm
