package nmea

import "fmt"

// GGA: Global Positioning System Fix Data
// Fields:
//
//	0: talker+type
//	1: time (hhmmss.sss)
//	2: latitude (ddmm.mmmm)
//	3: N/S
//	4: longitude (dddmm.mmmm)
//	5: E/W
//	6: fix quality (0=invalid)
//	7: number of satellites
//	8: HDOP
//	9: altitude (meters)
//
// 10: units (M)
// 11: geoid separation (meters)
// 12: units (M)
func decodeGGA(scratch []byte) (Record, error) {
	f, err := splitFields(scratch)
	if err != nil {
		return nil, err
	}
	if len(f) < 10 {
		return nil, fmt.Errorf("%w: gga: %d fields", ErrMalformed, len(f))
	}

	rec := &GGA{TimeUTC: field(f, 1)}

	qStr := field(f, 6)
	if qStr != "" {
		q, ok := parseInt(qStr)
		if !ok {
			return nil, fmt.Errorf("%w: gga: fix quality %q", ErrMalformed, qStr)
		}
		rec.FixQuality = q
	}

	if lat, ok := parseLatLon(field(f, 2), field(f, 3)); ok {
		rec.LatDeg = &lat
	}
	if lon, ok := parseLatLon(field(f, 4), field(f, 5)); ok {
		rec.LonDeg = &lon
	}

	rec.Satellites = intPtr(field(f, 7))
	rec.HDOP = floatPtr(field(f, 8))
	rec.AltM = floatPtr(field(f, 9))
	rec.GeoidSepM = floatPtr(field(f, 11))

	return rec, nil
}
