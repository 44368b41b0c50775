package asterix

import (
	"errors"
	"sync/atomic"
)

// Diagnostics holds process-lifetime counters shared by a dispatcher
// and every category handler registered with it. All fields are
// updated with relaxed ordering: they are for observation only, never
// for control flow, so atomic.Uint64's default Add/Load is sufficient.
type Diagnostics struct {
	TotalPackets        atomic.Uint64
	TrailingBytesCount  atomic.Uint64
	UnhandledCategories atomic.Uint64
	MalformedBlocks     atomic.Uint64
	MalformedRecords    atomic.Uint64
	RecordParseErrors   atomic.Uint64
	ProtocolViolations  atomic.Uint64
	UnhandledItems      atomic.Uint64
}

// Snapshot is a copyable, point-in-time read of Diagnostics. Unlike
// Diagnostics, it carries plain uint64 fields so it can be returned by
// value, logged, or marshalled.
type Snapshot struct {
	TotalPackets        uint64 `json:"totalPackets"`
	TrailingBytesCount  uint64 `json:"trailingBytesCount"`
	UnhandledCategories uint64 `json:"unhandledCategories"`
	MalformedBlocks     uint64 `json:"malformedBlocks"`
	MalformedRecords    uint64 `json:"malformedRecords"`
	RecordParseErrors   uint64 `json:"recordParseErrors"`
	ProtocolViolations  uint64 `json:"protocolViolations"`
	UnhandledItems      uint64 `json:"unhandledItems"`
}

// Snapshot takes an unsynchronised, point-in-time read of every counter.
func (d *Diagnostics) Snapshot() Snapshot {
	return Snapshot{
		TotalPackets:        d.TotalPackets.Load(),
		TrailingBytesCount:  d.TrailingBytesCount.Load(),
		UnhandledCategories: d.UnhandledCategories.Load(),
		MalformedBlocks:     d.MalformedBlocks.Load(),
		MalformedRecords:    d.MalformedRecords.Load(),
		RecordParseErrors:   d.RecordParseErrors.Load(),
		ProtocolViolations:  d.ProtocolViolations.Load(),
		UnhandledItems:      d.UnhandledItems.Load(),
	}
}

// Record increments whichever counter corresponds to err, the closed
// taxonomy defined in errors.go. It is the single place that maps a
// decode failure onto a diagnostic counter, so dispatcher and category
// handler code never duplicate that mapping. A nil or unrecognised err
// is a no-op.
func (d *Diagnostics) Record(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, ErrNotEnoughData):
		d.MalformedRecords.Add(1)
	case errors.Is(err, ErrMalformedBlock):
		d.MalformedBlocks.Add(1)
	case errors.Is(err, ErrMalformedRecord):
		d.MalformedRecords.Add(1)
	case errors.Is(err, ErrProtocolViolation):
		d.ProtocolViolations.Add(1)
	case errors.Is(err, ErrUnhandledCategory):
		d.UnhandledCategories.Add(1)
	case errors.Is(err, ErrUnhandledItem):
		d.UnhandledItems.Add(1)
	}
}

// Reset zeroes every counter. Intended for test setup, not for
// production use while a dispatcher is live.
func (d *Diagnostics) Reset() {
	d.TotalPackets.Store(0)
	d.TrailingBytesCount.Store(0)
	d.UnhandledCategories.Store(0)
	d.MalformedBlocks.Store(0)
	d.MalformedRecords.Store(0)
	d.RecordParseErrors.Store(0)
	d.ProtocolViolations.Store(0)
	d.UnhandledItems.Store(0)
}
