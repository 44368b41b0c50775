package cat001

import (
	"math"

	"asterixdecode/internal/asterix"
	"asterixdecode/internal/wire"
)

// rangeScale converts a 1/128 NM range count to meters.
const rangeScale = 1852.0 / 128.0

// azimuthScale converts a 360/65536-degree count to radians.
const azimuthScale = math.Pi / 32768.0

// heightScale converts a 1/4-flight-level (25 ft) count to meters.
const heightScale = 25.0 * 0.3048

func newSACSIC() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I001/010", true, 2, func(r *Report, data []byte) error {
		r.SAC = data[0]
		r.SIC = data[1]
		return nil
	})
}

// newTargetReportDescriptor decodes I001/020: an FX-extended item
// whose first octet carries the plot source (bits 5-4) and SPI pulse
// (bit 2), with bits 7 and 6 reserved and required to be clear. If the
// first octet's FX bit (bit 0) is set, a second octet carries the
// simulated-origin subfield (bits 6-5), with bits 7, 4 and 3 reserved;
// a third octet is never recognised, so FX set on the second octet is
// itself a decode failure.
func newTargetReportDescriptor() *asterix.ExtendedHandler[Report] {
	return asterix.NewExtendedHandler[Report]("I001/020", true, 1, 1, func(r *Report, data []byte) error {
		w1 := wire.NewBitWalker(data[0])
		if w1.Bit(7) || w1.Bit(6) {
			return asterix.ErrProtocolViolation
		}
		r.Source = PlotSource(w1.Field(4, 2))
		r.SPI = w1.Bit(2)

		if !w1.Bit(0) {
			return nil
		}

		w2 := wire.NewBitWalker(data[1])
		if w2.Bit(7) || w2.Bit(4) || w2.Bit(3) {
			return asterix.ErrProtocolViolation
		}
		r.Origin = SimulatedOrigin(w2.Field(5, 2))

		if w2.Bit(0) {
			return asterix.ErrProtocolViolation
		}
		return nil
	})
}

// newPolarCoordinates decodes I001/040: a fixed 4-byte RHO/THETA pair.
func newPolarCoordinates() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I001/040", false, 4, func(r *Report, data []byte) error {
		rho := uint16(data[0])<<8 | uint16(data[1])
		theta := uint16(data[2])<<8 | uint16(data[3])
		r.RangeMeters = float64(rho) * rangeScale
		r.AzimuthRadians = float64(theta) * azimuthScale
		return nil
	})
}

// newMode3A decodes I001/070: a fixed 2-byte Mode-3/A code with
// validity, garble and local-track flags in its top three bits and a
// 12-bit octal-encoded code in the low 12 bits.
func newMode3A() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I001/070", false, 2, func(r *Report, data []byte) error {
		w := wire.NewBitWalker(data[0])
		code := uint16(w.Field(0, 4))<<8 | uint16(data[1])
		r.Mode3A = &Mode3A{
			Validated: w.Bit(7),
			Garbled:   w.Bit(6),
			Local:     w.Bit(5),
			Code:      code,
		}
		return nil
	})
}

// newModeC decodes I001/090: a fixed 2-byte Mode-C height with
// validity and garble flags and a 14-bit two's-complement height code
// in units of 1/4 flight level.
func newModeC() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I001/090", false, 2, func(r *Report, data []byte) error {
		w := wire.NewBitWalker(data[0])
		code := uint16(w.Field(0, 6))<<8 | uint16(data[1])
		signed := int16(code<<2) >> 2 // sign-extend from 14 bits
		r.ModeC = &ModeC{
			Validated:    w.Bit(7),
			Garbled:      w.Bit(6),
			HeightMeters: float64(signed) * heightScale,
		}
		return nil
	})
}

// newTruncatedTimeOfDay decodes I001/141: the 16-bit truncated clock
// that ExpandTruncatedTime later reconciles against the source's last
// known full-precision time.
func newTruncatedTimeOfDay() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I001/141", false, 2, func(r *Report, data []byte) error {
		r.LSPClock = uint16(data[0])<<8 | uint16(data[1])
		r.HasLSPClock = true
		return nil
	})
}

// Size-only items: their payload is recognised but not interpreted by
// this decoder. They still occupy FRNs and must be sized correctly so
// the record walk stays aligned.
func newAircraftAddress() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I001/130", false, 1, nil)
}

func newRadarPlotCharacteristics() *asterix.ExtendedHandler[Report] {
	return asterix.NewExtendedHandler[Report]("I001/131", false, 1, 1, nil)
}

func newWarningConditions() *asterix.ExtendedHandler[Report] {
	return asterix.NewExtendedHandler[Report]("I001/150", false, 1, 1, nil)
}

func newModeSData() *asterix.ExtendedHandler[Report] {
	return asterix.NewExtendedHandler[Report]("I001/050", false, 2, 1, nil)
}
