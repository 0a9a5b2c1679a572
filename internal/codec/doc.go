// Package codec decodes BER values against ASN.1 type descriptors.
//
// Types are plain values implementing Type: Sequence, Set, Choice, Of,
// Primitive, Tagged, Any, OpenType, Containing, Func and Ref. Protocol
// modules describe their messages as tables of these and register them in a
// Builder:
//
//	b := codec.NewBuilder()
//	filter := b.Declare("Filter")
//	b.Define("Filter", codec.NewChoice("Filter",
//	    codec.F("and", codec.SetOf(filter)).Implicit(ber.Ctx(0)),
//	    codec.F("present", codec.OctetText()).Implicit(ber.Ctx(7)),
//	))
//	reg, err := b.Build()
//
// Declare hands out a Ref before the type exists, so recursive types are
// wired in two passes. Build fails if a declared name was never defined.
//
// # Decoding
//
// Registry.Decode never returns an error. Problems become Anomaly values
// attached to the node where they occurred and collected in the Result.
// A value that cannot be decoded is marked Malformed and keeps its raw
// content; its parent resumes at the value's declared end, so siblings
// still decode. Only a header that cannot be read at all stops the parent.
//
// Open types (ANY DEFINED BY) read their key from the nearest enclosing
// SEQUENCE or SET: the last OID-valued field, or any field marked with
// Identifier, selects the decoder registered with RegisterExtension.
//
// # Concurrency
//
// A Builder is single-threaded. A Registry is immutable and may be shared.
// Each decode uses its own Context.
package codec
