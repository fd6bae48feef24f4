// Package toon implements TOON, a line-oriented text data-interchange format.
//
// TOON shares JSON's data model (objects, arrays, strings, numbers, booleans,
// null) and adds two things JSON lacks: configuration ergonomics (indentation
// nesting, dotted keys) and a dense tabular form for arrays of homogeneous
// records.
//
// # Document Forms
//
// Object:          key: value, nesting by indentation
// Inline array:    items[3]: 1,2,3
// Tabular array:   users[2]{id,name}: followed by one row per record
// Expanded list:   tags[2]: followed by "- item" lines
// Dotted keys:     server.port: 8080 (with path expansion enabled)
//
// # Example
//
//	users[2]{id,name,admin}:
//	  1,Alice,true
//	  2,Bob,false
//	server:
//	  host: localhost
//	  port: 8080
//
// # Codec Contract
//
// Decode and Encode are mutually consistent: for every in-domain Value v,
// Decode(Encode(v, opts), opts) yields a value equal to v, and re-encoding a
// decoded document reproduces it byte for byte. Objects preserve insertion
// order. Int and Float are distinct kinds; a Float with an integral value
// encodes without a fraction (2.0 as "2") and therefore decodes as Int.
// Non-finite floats are normalised to null on encode.
//
// # Strictness
//
// With Options.Strict (the default) the decoder validates indentation
// granularity, declared array counts, tabular row widths, list item prefixes,
// and escape sequences, reporting a *DecodeError with a 1-based line number.
// Non-strict decoding accepts the actual shape of the document and resolves
// conflicts last-write-wins.
package toon
