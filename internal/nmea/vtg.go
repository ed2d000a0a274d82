package nmea

import "fmt"

// VTG: Track Made Good and Ground Speed
// Fields:
//
//	0: talker+type
//	1: track, degrees true
//	2: T
//	3: track, degrees magnetic
//	4: M
//	5: speed over ground, knots
//	6: N
//	7: speed over ground, km/h
//	8: K
func decodeVTG(scratch []byte) (Record, error) {
	f, err := splitFields(scratch)
	if err != nil {
		return nil, err
	}
	if len(f) < 8 {
		return nil, fmt.Errorf("%w: vtg: %d fields", ErrMalformed, len(f))
	}

	rec := &VTG{
		TrackTrueDeg: floatPtr(field(f, 1)),
		TrackMagDeg:  floatPtr(field(f, 3)),
		SpeedKt:      floatPtr(field(f, 5)),
		SpeedKmh:     floatPtr(field(f, 7)),
	}

	// A VTG with neither track nor speed carries nothing usable.
	if rec.TrackTrueDeg == nil && rec.TrackMagDeg == nil && rec.SpeedKt == nil && rec.SpeedKmh == nil {
		return nil, fmt.Errorf("%w: vtg: all fields empty", ErrMalformed)
	}

	return rec, nil
}
