package asterix

import "errors"

// The closed set of internal decode failures. None of these ever cross
// the public API: HandlePacket reports outcomes only through the
// Diagnostics counters. They exist so field and category handlers can
// communicate *why* a record was abandoned to the code that decides
// which counter to bump.
var (
	// ErrNotEnoughData means a handler's reported size exceeded the
	// bytes actually remaining in the payload.
	ErrNotEnoughData = errors.New("asterix: not enough data for item")
	// ErrMalformedBlock means a block header failed its bounds checks.
	ErrMalformedBlock = errors.New("asterix: malformed block header")
	// ErrMalformedRecord means the FSPEC walk ran out of payload
	// mid-item or the final FSPEC byte still had FX set.
	ErrMalformedRecord = errors.New("asterix: malformed record")
	// ErrProtocolViolation means a mandatory FSPEC bit was missing, or
	// a field handler rejected its own input (e.g. a reserved bit was
	// set).
	ErrProtocolViolation = errors.New("asterix: protocol violation")
	// ErrUnhandledCategory means no handler is registered for the
	// block's category.
	ErrUnhandledCategory = errors.New("asterix: unhandled category")
	// ErrUnhandledItem means an FSPEC bit was set for which no field
	// handler is registered.
	ErrUnhandledItem = errors.New("asterix: unhandled item")
)
