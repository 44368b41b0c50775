package asterix

// CategoryHandler owns the FRN-indexed field handler table for one
// ASTERIX category and drives the FSPEC walk for every record of that
// category. It is generic in the report type R so that each worked
// category (cat001.Report, cat002.Report, ...) gets its own typed
// pipeline without duplicating the walk logic.
//
// CategoryHandler never fans out reports on its own and never touches
// source state — that bookkeeping is category-specific and lives in
// the thin cat001/cat002 wrappers that embed it. CategoryHandler turns
// (fspec, payload) into a populated *R and holds the listener list
// that the wrappers deliver to through FanOut.
type CategoryHandler[R any] struct {
	diag *Diagnostics

	itemLookup [MaxFRNs]FieldHandler[R]

	mandatoryFspec     [20]byte
	mandatoryFspecSize int

	listeners *listenerRegistry[R]
}

// NewCategoryHandler constructs a handler wired to diag for counter
// bookkeeping. diag must not be nil.
func NewCategoryHandler[R any](diag *Diagnostics) *CategoryHandler[R] {
	return &CategoryHandler[R]{diag: diag, listeners: newListenerRegistry[R]()}
}

// AddListener registers l to receive every report this handler
// decodes from now on, for as long as the caller keeps l reachable.
func (h *CategoryHandler[R]) AddListener(l *Listener[R]) {
	h.listeners.add(l)
}

// RemoveListener explicitly drops l's subscription.
func (h *CategoryHandler[R]) RemoveListener(l *Listener[R]) {
	h.listeners.remove(l)
}

// FanOut delivers report to every live listener. Category wrappers
// call this themselves, after whatever category-specific bookkeeping
// (time reconciliation, source-state updates) needs to happen first.
func (h *CategoryHandler[R]) FanOut(report *R) {
	h.listeners.fanOut(report)
}

// AddHandler registers h at Field Record Number frn (1-based). FRN 0
// and FRN > MaxFRNs are rejected silently (a no-op), matching the
// teacher table's tolerance for out-of-range registration requests.
// Registering a second handler at an already-occupied FRN replaces
// the first outright; there is no ownership pool to reconcile in Go,
// a plain table write is sufficient.
func (h *CategoryHandler[R]) AddHandler(frn int, handler FieldHandler[R]) {
	if frn <= 0 || frn > MaxFRNs || handler == nil {
		return
	}

	if handler.Mandatory() {
		byteIdx := (frn - 1) / 7
		bitIdx := uint(7 - ((frn - 1) % 7))
		h.mandatoryFspec[byteIdx] |= 1 << bitIdx
		if byteIdx+1 > h.mandatoryFspecSize {
			h.mandatoryFspecSize = byteIdx + 1
		}
	}

	h.itemLookup[frn-1] = handler
}

// ProcessRecord validates fspec against the mandatory mask, then walks
// it FRN-ascending, dispatching each set bit to its registered field
// handler and writing into report. It returns the number of payload
// bytes consumed (0 on any failure, with the appropriate diagnostic
// counter already incremented).
func (h *CategoryHandler[R]) ProcessRecord(fspec, payload []byte, report *R) int {
	if len(fspec) < h.mandatoryFspecSize {
		h.diag.Record(ErrProtocolViolation)
		return 0
	}
	for i := 0; i < h.mandatoryFspecSize; i++ {
		if h.mandatoryFspec[i]&^fspec[i] != 0 {
			h.diag.Record(ErrProtocolViolation)
			return 0
		}
	}

	frnBase := 1
	remaining := payload

	for _, b := range fspec {
		itemBits := b &^ 0x01 // clear FX bit

		for itemBits != 0 {
			offset := highBitOffset(itemBits)
			frn := frnBase + offset

			handler := h.itemLookup[frn-1]
			if handler == nil {
				h.diag.Record(ErrUnhandledItem)
				return 0
			}

			size := handler.Size(remaining)
			if size == 0 || size > len(remaining) {
				h.diag.Record(ErrNotEnoughData)
				return 0
			}

			if err := handler.Decode(report, remaining[:size]); err != nil {
				h.diag.Record(ErrProtocolViolation)
				return 0
			}

			remaining = remaining[size:]
			itemBits &^= 1 << (7 - offset)
		}

		isLast := b&0x01 == 0
		if isLast {
			return len(payload) - len(remaining)
		}
		frnBase += 7
	}

	// Fell out of the loop with the final FSPEC byte still FX=1.
	h.diag.Record(ErrMalformedRecord)
	return 0
}

// highBitOffset returns the offset (0 = bit 7, 1 = bit 6, ..., 6 = bit
// 1) of the highest set item bit in b. b must have its FX bit (bit 0)
// already cleared and must be nonzero.
func highBitOffset(b byte) int {
	for offset := 0; offset <= 6; offset++ {
		if b&(1<<(7-offset)) != 0 {
			return offset
		}
	}
	return 6
}
