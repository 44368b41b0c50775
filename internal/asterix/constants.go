// Package asterix implements the category-agnostic ASTERIX decoder
// pipeline: the packet dispatcher, the generic FSPEC-walking category
// handler, the source-state store, the time reconciler and the
// listener fan-out. Category-specific report types and field handlers
// live in sibling packages (cat001, cat002).
package asterix

// Wire-format constants, fixed by the ASTERIX standard.
const (
	// HeaderSize is the size of a block header: category (1) + length (2).
	HeaderSize = 3
	// MinBlockSize is the smallest buffer that could hold a valid block:
	// header (3) + a one-byte FSPEC + at least one data byte.
	MinBlockSize = 5
	// MaxFSPECBytes bounds how far the FSPEC-extension scan will walk
	// before giving up on a record.
	MaxFSPECBytes = 10
	// MaxFRNs is the largest field-record-number the dense per-category
	// handler table can address.
	MaxFRNs = 128
	// MaxCategories bounds the dispatcher's category lookup table.
	MaxCategories = 256
)
