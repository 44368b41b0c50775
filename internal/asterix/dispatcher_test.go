package asterix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	consume int
	calls   [][]byte
}

func (s *stubProcessor) ProcessRecord(fspec, payload []byte, receivedAt time.Time) int {
	s.calls = append(s.calls, append([]byte{}, fspec...))
	return s.consume
}

func block(cat byte, body ...byte) []byte {
	length := 3 + len(body)
	b := []byte{cat, byte(length >> 8), byte(length & 0xFF)}
	return append(b, body...)
}

func TestDispatcher_EmptyBuffer(t *testing.T) {
	d := NewPacketDispatcher()
	d.HandlePacket(nil, time.Time{})
	assert.EqualValues(t, 0, d.Diagnostics().Snapshot().TotalPackets)
}

func TestDispatcher_TotalPacketsIncrementsOnAnyNonEmptyBuffer(t *testing.T) {
	d := NewPacketDispatcher()
	d.HandlePacket([]byte{0x01}, time.Time{})
	assert.EqualValues(t, 1, d.Diagnostics().Snapshot().TotalPackets)
}

func TestDispatcher_TrailingBytes(t *testing.T) {
	d := NewPacketDispatcher()
	blk := block(1, 0x80, 0x01)
	proc := &stubProcessor{consume: 1}
	d.RegisterCategory(1, proc)

	buf := append(blk, 0x01, 0x02, 0x03) // three extra trailing bytes
	d.HandlePacket(buf, time.Time{})

	assert.EqualValues(t, 3, d.Diagnostics().Snapshot().TrailingBytesCount)
}

func TestDispatcher_UnhandledCategory(t *testing.T) {
	d := NewPacketDispatcher()
	blk := block(9, 0x80, 0x01)

	d.HandlePacket(blk, time.Time{})

	assert.EqualValues(t, 1, d.Diagnostics().Snapshot().UnhandledCategories)
}

func TestDispatcher_MalformedBlockLength(t *testing.T) {
	d := NewPacketDispatcher()
	buf := []byte{1, 0xFF, 0xFF, 0x00, 0x00} // declared length far exceeds buffer

	d.HandlePacket(buf, time.Time{})

	assert.EqualValues(t, 1, d.Diagnostics().Snapshot().MalformedBlocks)
}

func TestDispatcher_RoutesRecordToRegisteredCategory(t *testing.T) {
	d := NewPacketDispatcher()
	proc := &stubProcessor{consume: 1}
	d.RegisterCategory(1, proc)

	blk := block(1, 0x80, 0x01)
	d.HandlePacket(blk, time.Now())

	require.Len(t, proc.calls, 1)
	assert.Equal(t, []byte{0x80}, proc.calls[0])
}

func TestDispatcher_MultipleRecordsInOneBlock(t *testing.T) {
	d := NewPacketDispatcher()
	proc := &stubProcessor{consume: 1}
	d.RegisterCategory(1, proc)

	blk := block(1, 0x80, 0x01, 0x80, 0x02)
	d.HandlePacket(blk, time.Now())

	assert.Len(t, proc.calls, 2)
}

func TestDispatcher_RecordParseErrorStopsBlock(t *testing.T) {
	d := NewPacketDispatcher()
	proc := &stubProcessor{consume: 0} // simulate ProcessRecord failing every time
	d.RegisterCategory(1, proc)

	blk := block(1, 0x80, 0x01)
	d.HandlePacket(blk, time.Now())

	assert.EqualValues(t, 1, d.Diagnostics().Snapshot().RecordParseErrors)
}

func TestDispatcher_RejectsFSPECChainLongerThanCap(t *testing.T) {
	d := NewPacketDispatcher()
	proc := &stubProcessor{consume: 1}
	d.RegisterCategory(1, proc)

	// An FSPEC whose FX bit never clears within MaxFSPECBytes must be
	// rejected before reaching the processor.
	fspec := make([]byte, MaxFSPECBytes+5)
	for i := range fspec {
		fspec[i] = 0x03 // a data bit set plus FX
	}
	blk := block(1, fspec...)

	d.HandlePacket(blk, time.Now())

	assert.Empty(t, proc.calls)
	assert.EqualValues(t, 1, d.Diagnostics().Snapshot().RecordParseErrors)
}

func TestDispatcher_RegisterCategoryReplacesExisting(t *testing.T) {
	d := NewPacketDispatcher()
	first := &stubProcessor{consume: 1}
	second := &stubProcessor{consume: 1}
	d.RegisterCategory(1, first)
	d.RegisterCategory(1, second)

	blk := block(1, 0x80, 0x01)
	d.HandlePacket(blk, time.Now())

	assert.Empty(t, first.calls)
	assert.Len(t, second.calls, 1)
}
