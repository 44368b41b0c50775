package cat002

import (
	"time"

	"asterixdecode/internal/asterix"
)

// Handler is the Category 002 pipeline: it owns the field-handler
// table via an embedded *asterix.CategoryHandler[Report] and fans the
// finished Report out to listeners. It implements
// asterix.RecordProcessor so a PacketDispatcher can drive it directly.
//
// Category 002 carries its own full-precision time of day in every
// record, so unlike Category 001 it writes straight through to shared
// source state without needing ExpandTruncatedTime.
type Handler struct {
	*asterix.CategoryHandler[Report]

	sources *asterix.SourceStateStore
}

// Listener is the subscriber handle for Category 002 reports.
type Listener = asterix.Listener[Report]

// New builds a ready-to-register Category 002 handler. sources is
// shared with any other category writing source-relative time state.
func New(diag *asterix.Diagnostics, sources *asterix.SourceStateStore) *Handler {
	h := &Handler{
		CategoryHandler: asterix.NewCategoryHandler[Report](diag),
		sources:         sources,
	}

	h.AddHandler(1, newSACSIC())
	h.AddHandler(2, newMessageType())
	h.AddHandler(3, newSectorNumber())
	h.AddHandler(4, newTimeOfDay())
	h.AddHandler(5, newAntennaRotationSpeed())
	h.AddHandler(6, newStationConfigurationStatus())

	return h
}

// ProcessRecord decodes one record's FSPEC-selected items into a
// fresh Report, records the source's time-of-day state and fans the
// Report out. It satisfies asterix.RecordProcessor.
func (h *Handler) ProcessRecord(fspec, payload []byte, receivedAt time.Time) int {
	report := &Report{ReceivedAt: receivedAt}

	consumed := h.CategoryHandler.ProcessRecord(fspec, payload, report)
	if consumed == 0 {
		return 0
	}

	if report.HasTOD {
		id := asterix.SourceID{SAC: report.SAC, SIC: report.SIC}
		h.sources.Update(id, report.TOD)
	}

	h.FanOut(report)

	return consumed
}
