package nmea

import "fmt"

// GSA: GNSS DOP and Active Satellites
// Fields:
//
//	 0: talker+type
//	 1: selection mode (A=auto, M=manual)
//	 2: fix type (1=no fix, 2=2D, 3=3D)
//	 3..14: PRNs of satellites used (blank slots allowed)
//	15: PDOP
//	16: HDOP
//	17: VDOP
func decodeGSA(scratch []byte) (Record, error) {
	f, err := splitFields(scratch)
	if err != nil {
		return nil, err
	}
	if len(f) < 15 {
		return nil, fmt.Errorf("%w: gsa: %d fields", ErrMalformed, len(f))
	}

	mode := field(f, 1)
	if mode != "A" && mode != "M" {
		return nil, fmt.Errorf("%w: gsa: mode %q", ErrMalformed, mode)
	}

	fix, ok := parseInt(field(f, 2))
	if !ok || fix < 1 || fix > 3 {
		return nil, fmt.Errorf("%w: gsa: fix type %q", ErrMalformed, field(f, 2))
	}

	rec := &GSA{Mode: mode, FixType: fix}
	for i := 3; i <= 14; i++ {
		if prn, ok := parseInt(field(f, i)); ok {
			rec.PRNs = append(rec.PRNs, prn)
		}
	}
	rec.PDOP = floatPtr(field(f, 15))
	rec.HDOP = floatPtr(field(f, 16))
	rec.VDOP = floatPtr(field(f, 17))

	return rec, nil
}
