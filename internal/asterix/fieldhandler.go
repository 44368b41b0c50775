package asterix

// FieldHandler decodes one ASTERIX data item into a report of type R.
// Implementations are registered against a Field Record Number on a
// CategoryHandler[R]; the category layer never calls Decode without
// first confirming Size bytes are actually available.
type FieldHandler[R any] interface {
	// Size reports how many bytes this item occupies, given the
	// remaining payload. A return of 0 means the item is malformed
	// (e.g. an extended-length item whose FX chain ran off the end of
	// the payload) and the record must be abandoned.
	Size(remaining []byte) int
	// Decode reads exactly the first Size(data) bytes of data and
	// writes the result into report. A non-nil error (e.g. a reserved
	// bit violation) aborts the record and is counted as a protocol
	// violation.
	Decode(report *R, data []byte) error
	// Mandatory reports whether this item's FSPEC bit must be set for
	// a record to be considered protocol-conformant.
	Mandatory() bool
	// Name is the human-readable ASTERIX item name, used only for
	// diagnostics and registration bookkeeping.
	Name() string
}

// FixedHandler is a FieldHandler helper for items whose size never
// depends on their content.
type FixedHandler[R any] struct {
	name      string
	mandatory bool
	size      int
	decode    func(report *R, data []byte) error
}

// NewFixedHandler builds a FieldHandler for a fixed-size item. decode
// may be nil for items whose payload is recognised but not
// interpreted (size-only bookkeeping items).
func NewFixedHandler[R any](name string, mandatory bool, size int, decode func(report *R, data []byte) error) *FixedHandler[R] {
	return &FixedHandler[R]{name: name, mandatory: mandatory, size: size, decode: decode}
}

func (h *FixedHandler[R]) Size(_ []byte) int { return h.size }

func (h *FixedHandler[R]) Decode(report *R, data []byte) error {
	if h.decode == nil {
		return nil
	}
	return h.decode(report, data)
}

func (h *FixedHandler[R]) Mandatory() bool { return h.mandatory }
func (h *FixedHandler[R]) Name() string    { return h.name }

// ExtendedHandler is a FieldHandler helper for FX-extended items: an
// initial block of k bytes, extended by i more bytes for every byte
// whose low bit (FX) is set, until a byte with FX clear is seen.
type ExtendedHandler[R any] struct {
	name      string
	mandatory bool
	k, i      int
	decode    func(report *R, data []byte) error
}

// NewExtendedHandler builds a FieldHandler for an FX-extended item.
// decode may be nil for size-only items.
func NewExtendedHandler[R any](name string, mandatory bool, k, i int, decode func(report *R, data []byte) error) *ExtendedHandler[R] {
	return &ExtendedHandler[R]{name: name, mandatory: mandatory, k: k, i: i, decode: decode}
}

func (h *ExtendedHandler[R]) Size(data []byte) int {
	pos := h.k - 1
	for pos < len(data) {
		if data[pos]&0x01 == 0 {
			return pos + 1
		}
		pos += h.i
	}
	// Ran out of data before finding an FX-clear byte: malformed.
	return 0
}

func (h *ExtendedHandler[R]) Decode(report *R, data []byte) error {
	if h.decode == nil {
		return nil
	}
	return h.decode(report, data)
}

func (h *ExtendedHandler[R]) Mandatory() bool { return h.mandatory }
func (h *ExtendedHandler[R]) Name() string    { return h.name }
