package asterix

import (
	"time"

	"asterixdecode/internal/wire"
)

// RecordProcessor is the type-erased face a CategoryHandler[R] wrapper
// presents to the PacketDispatcher. The dispatcher never needs to know
// a category's report type — it only needs to hand a record's FSPEC
// and payload to whatever is registered for that category and learn
// how many payload bytes were consumed.
type RecordProcessor interface {
	ProcessRecord(fspec, payload []byte, receivedAt time.Time) int
}

// PacketDispatcher is the top-level entry point: it splits a raw
// buffer into ASTERIX blocks, validates each block's length prefix,
// and routes each block's records to the category handler registered
// for that block's category byte.
type PacketDispatcher struct {
	diag       Diagnostics
	categories [MaxCategories]RecordProcessor
}

// NewPacketDispatcher returns a dispatcher with no categories
// registered and all diagnostics at zero.
func NewPacketDispatcher() *PacketDispatcher {
	return &PacketDispatcher{}
}

// Diagnostics returns the dispatcher's counter block. Category
// handlers registered with RegisterCategory share this same block, so
// a single snapshot covers the whole pipeline.
func (d *PacketDispatcher) Diagnostics() *Diagnostics {
	return &d.diag
}

// RegisterCategory installs handler as the processor for category
// cat. A second registration for the same category replaces the
// first outright — the dispatcher holds processors directly, so there
// is no separate ownership pool to reconcile as there would be with
// manually managed lifetimes.
func (d *PacketDispatcher) RegisterCategory(cat byte, handler RecordProcessor) {
	d.categories[cat] = handler
}

// HandlePacket processes buf as a stream of concatenated ASTERIX
// blocks. receivedAt is not interpreted by the decoder; it is
// forwarded unchanged to every RecordProcessor so reports can carry an
// arrival timestamp alongside their protocol-native TOD.
func (d *PacketDispatcher) HandlePacket(buf []byte, receivedAt time.Time) {
	if len(buf) == 0 {
		return
	}
	d.diag.TotalPackets.Add(1)

	view := wire.NewView(buf)
	for view.Len() >= MinBlockSize {
		consumed := d.processBlock(view, receivedAt)
		if consumed == 0 {
			d.diag.Record(ErrMalformedBlock)
			return
		}
		view = view.Advance(consumed)
	}

	if view.Len() > 0 {
		d.diag.TrailingBytesCount.Add(uint64(view.Len()))
	}
}

// processBlock parses one block's header and, if valid, walks its
// records. It returns the block's declared length (so the caller can
// advance past it, including any records skipped due to a mid-block
// parse error), or 0 if the header itself was invalid.
func (d *PacketDispatcher) processBlock(block wire.View, receivedAt time.Time) int {
	category, ok := block.At(0)
	if !ok {
		return 0
	}
	lenHi, ok1 := block.At(1)
	lenLo, ok2 := block.At(2)
	if !ok1 || !ok2 {
		return 0
	}
	length := int(lenHi)<<8 | int(lenLo)

	if length < HeaderSize || length > block.Len() {
		return 0
	}

	blockBody, _ := block.Slice(0, length)

	handler := d.categories[category]
	if handler == nil {
		d.diag.Record(ErrUnhandledCategory)
		return length
	}

	remaining := blockBody.Advance(HeaderSize)
	for remaining.Len() > 0 {
		consumed := d.dispatchRecord(remaining, handler, receivedAt)
		if consumed == 0 {
			d.diag.RecordParseErrors.Add(1)
			break
		}
		remaining = remaining.Advance(consumed)
	}

	return length
}

// dispatchRecord locates the FSPEC extent within record, enforces the
// FRN upper bound, and hands the split (fspec, payload) to handler.
func (d *PacketDispatcher) dispatchRecord(record wire.View, handler RecordProcessor, receivedAt time.Time) int {
	fspecLen := 0
	lastDataIdx := 0
	var lastDataValue byte

	for {
		if fspecLen >= record.Len() || fspecLen >= MaxFSPECBytes {
			return 0
		}
		b, _ := record.At(fspecLen)
		if b > 1 {
			lastDataIdx = fspecLen
			lastDataValue = b
		}
		fspecLen++
		if b&0x01 == 0 {
			break
		}
	}

	if lastDataValue > 0 {
		if lastDataIdx > 18 {
			return 0
		}
		if lastDataIdx == 18 && lastDataValue&0x3E != 0 {
			return 0
		}
	}

	fspecView, ok := record.Slice(0, fspecLen)
	if !ok {
		return 0
	}
	payloadView := record.Advance(fspecLen)

	consumed := handler.ProcessRecord(fspecView.Bytes(), payloadView.Bytes(), receivedAt)
	if consumed == 0 {
		return 0
	}
	return fspecLen + consumed
}
