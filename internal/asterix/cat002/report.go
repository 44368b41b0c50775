// Package cat002 decodes ASTERIX Category 002 (Sensor Status Reports)
// records into Report values and fans them out to listeners.
package cat002

import "time"

// Report is a single decoded Category 002 sensor status message.
type Report struct {
	SAC byte
	SIC byte

	ReceivedAt time.Time

	MessageType byte // I002/000, raw message-type code

	HasSectorNumber bool
	SectorNumber    byte // I002/020, raw 1/128 of a full turn

	HasTOD bool
	TOD    uint32 // I002/030, full time of day, 1/128 s since local midnight

	HasAntennaSpeed        bool
	AntennaRotationSeconds float64 // I002/041, time for one full antenna revolution
}
