package cat001

import (
	"time"

	"asterixdecode/internal/asterix"
)

// Handler is the Category 001 pipeline: it owns the field-handler
// table via an embedded *asterix.CategoryHandler[Report], reconciles
// each record's truncated clock against shared source state, and fans
// the finished Report out to listeners. It implements
// asterix.RecordProcessor so a PacketDispatcher can drive it directly.
type Handler struct {
	*asterix.CategoryHandler[Report]

	sources *asterix.SourceStateStore
}

// Listener is the subscriber handle for Category 001 reports.
type Listener = asterix.Listener[Report]

// New builds a ready-to-register Category 001 handler. sources is
// shared with any other category that needs source-relative time
// reconciliation; diag is shared with the dispatcher it will be
// registered on.
func New(diag *asterix.Diagnostics, sources *asterix.SourceStateStore) *Handler {
	h := &Handler{
		CategoryHandler: asterix.NewCategoryHandler[Report](diag),
		sources:         sources,
	}

	h.AddHandler(1, newSACSIC())
	h.AddHandler(2, newTargetReportDescriptor())
	h.AddHandler(3, newPolarCoordinates())
	h.AddHandler(4, newMode3A())
	h.AddHandler(5, newModeC())
	h.AddHandler(6, newTruncatedTimeOfDay())
	h.AddHandler(7, newAircraftAddress())
	h.AddHandler(8, newRadarPlotCharacteristics())
	h.AddHandler(10, newWarningConditions())
	h.AddHandler(15, newModeSData())

	return h
}

// ProcessRecord decodes one record's FSPEC-selected items into a
// fresh Report, reconciles its time of day against the record's
// source, records the source's new state and fans the Report out. It
// satisfies asterix.RecordProcessor.
func (h *Handler) ProcessRecord(fspec, payload []byte, receivedAt time.Time) int {
	report := &Report{ReceivedAt: receivedAt}

	consumed := h.CategoryHandler.ProcessRecord(fspec, payload, report)
	if consumed == 0 {
		return 0
	}

	id := asterix.SourceID{SAC: report.SAC, SIC: report.SIC}

	ref, ok := h.sources.Get(id)
	if !ok {
		ref = todFromClock(receivedAt)
	}

	if report.HasLSPClock {
		report.TOD = asterix.ExpandTruncatedTime(report.LSPClock, ref)
	} else {
		report.TOD = ref
	}

	h.sources.Update(id, report.TOD)
	h.FanOut(report)

	return consumed
}

// todFromClock derives a 1/128 s-since-local-midnight Time-Of-Day from
// a wall-clock instant, for use as a reconciliation reference when no
// source state has been recorded yet.
func todFromClock(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	secs := t.Sub(midnight).Seconds()
	return uint32(secs * 128)
}
