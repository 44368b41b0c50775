package cat002

import "asterixdecode/internal/asterix"

// antennaRotationScale converts a 1/128 s count into seconds.
const antennaRotationScale = 1.0 / 128.0

func newSACSIC() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I002/010", true, 2, func(r *Report, data []byte) error {
		r.SAC = data[0]
		r.SIC = data[1]
		return nil
	})
}

// newMessageType decodes I002/000: a single byte naming the kind of
// status message this record carries.
func newMessageType() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I002/000", true, 1, func(r *Report, data []byte) error {
		r.MessageType = data[0]
		return nil
	})
}

// newSectorNumber decodes I002/020: a single byte giving the sector
// boundary crossed, in units of 1/128 of a full turn.
func newSectorNumber() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I002/020", false, 1, func(r *Report, data []byte) error {
		r.SectorNumber = data[0]
		r.HasSectorNumber = true
		return nil
	})
}

// newTimeOfDay decodes I002/030: a 3-byte, already-full-precision
// time of day. Unlike Category 001, Category 002 never needs
// reconciliation against source state.
func newTimeOfDay() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I002/030", true, 3, func(r *Report, data []byte) error {
		r.TOD = uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
		r.HasTOD = true
		return nil
	})
}

// newAntennaRotationSpeed decodes I002/041: a 2-byte count of the
// time taken for one full antenna revolution, in 1/128 s units.
func newAntennaRotationSpeed() *asterix.FixedHandler[Report] {
	return asterix.NewFixedHandler[Report]("I002/041", false, 2, func(r *Report, data []byte) error {
		raw := uint16(data[0])<<8 | uint16(data[1])
		r.AntennaRotationSeconds = float64(raw) * antennaRotationScale
		r.HasAntennaSpeed = true
		return nil
	})
}

// newStationConfigurationStatus decodes I002/050: an FX-extended,
// size-only status item whose individual bits this decoder does not
// interpret.
func newStationConfigurationStatus() *asterix.ExtendedHandler[Report] {
	return asterix.NewExtendedHandler[Report]("I002/050", false, 1, 1, nil)
}
