package cat002

import (
	"testing"
	"time"

	"asterixdecode/internal/asterix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ProcessRecord_FansOutAndUpdatesSourceState(t *testing.T) {
	diag := &asterix.Diagnostics{}
	sources := asterix.NewSourceStateStore()
	h := New(diag, sources)

	var got *Report
	h.AddListener(&Listener{OnReportDecoded: func(r *Report) { got = r }})

	// FRN1 (SAC/SIC), FRN2 (message type) and FRN4 (time of day), all
	// three mandatory, set.
	fspec := []byte{0b11010000}
	payload := []byte{1, 2, 0x03, 0x01, 0x00, 0x00} // sac, sic, msgType, TOD=0x010000

	consumed := h.ProcessRecord(fspec, payload, time.Now())

	require.Equal(t, len(payload), consumed)
	require.NotNil(t, got)
	assert.Equal(t, byte(1), got.SAC)
	assert.Equal(t, byte(2), got.SIC)
	assert.Equal(t, byte(0x03), got.MessageType)
	assert.True(t, got.HasTOD)

	tod, ok := sources.Get(asterix.SourceID{SAC: 1, SIC: 2})
	require.True(t, ok)
	assert.Equal(t, uint32(0x010000), tod)
}

func TestHandler_ProcessRecord_NoTODLeavesSourceStateUntouched(t *testing.T) {
	diag := &asterix.Diagnostics{}
	sources := asterix.NewSourceStateStore()
	h := New(diag, sources)

	// FRN1 and FRN2 only, no time of day: I002/030 is mandatory, so the
	// record is rejected before any source state is written.
	fspec := []byte{0b11000000}
	payload := []byte{9, 9, 0x01}

	consumed := h.ProcessRecord(fspec, payload, time.Now())
	require.Equal(t, 0, consumed)

	_, ok := sources.Get(asterix.SourceID{SAC: 9, SIC: 9})
	assert.False(t, ok)
}

func TestHandler_ProcessRecord_MissingMandatoryMessageType(t *testing.T) {
	diag := &asterix.Diagnostics{}
	sources := asterix.NewSourceStateStore()
	h := New(diag, sources)

	fspec := []byte{0b10000000} // FRN1 only, FRN2 (mandatory) missing
	payload := []byte{1, 2}

	consumed := h.ProcessRecord(fspec, payload, time.Now())
	assert.Equal(t, 0, consumed)
	assert.EqualValues(t, 1, diag.ProtocolViolations.Load())
}
