package nmea

import "fmt"

// GSV: GNSS Satellites in View
// Fields:
//
//	0: talker+type
//	1: total number of GSV messages in this report
//	2: message number (1-based)
//	3: satellites in view
//	4..: up to four blocks of (PRN, elevation, azimuth, SNR);
//	     SNR is blank when the satellite is not tracked
func decodeGSV(scratch []byte) (Record, error) {
	f, err := splitFields(scratch)
	if err != nil {
		return nil, err
	}
	if len(f) < 4 {
		return nil, fmt.Errorf("%w: gsv: %d fields", ErrMalformed, len(f))
	}

	total, ok := parseInt(field(f, 1))
	if !ok || total < 1 {
		return nil, fmt.Errorf("%w: gsv: total messages %q", ErrMalformed, field(f, 1))
	}
	num, ok := parseInt(field(f, 2))
	if !ok || num < 1 || num > total {
		return nil, fmt.Errorf("%w: gsv: message number %q of %d", ErrMalformed, field(f, 2), total)
	}
	inView, ok := parseInt(field(f, 3))
	if !ok || inView < 0 {
		return nil, fmt.Errorf("%w: gsv: satellites in view %q", ErrMalformed, field(f, 3))
	}

	rec := &GSV{TotalMessages: total, MessageNumber: num, InView: inView}

	// Whole 4-field blocks only; a trailing partial block is receiver noise.
	for base := 4; base+3 < len(f); base += 4 {
		prn, ok := parseInt(field(f, base))
		if !ok {
			continue
		}
		rec.Satellites = append(rec.Satellites, Satellite{
			PRN:          prn,
			ElevationDeg: intPtr(field(f, base+1)),
			AzimuthDeg:   intPtr(field(f, base+2)),
			SNRdB:        intPtr(field(f, base+3)),
		})
	}

	return rec, nil
}
