package nmea

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// splitFields tokenizes a sentence scratch buffer in place: strips the
// leading '$', verifies and drops the '*hh' checksum when one is present
// (absent checksums are tolerated; upstream ingestion pre-filters), and
// splits the remainder on commas. The returned slices alias scratch and
// share its lifetime.
func splitFields(scratch []byte) ([][]byte, error) {
	s := bytes.TrimSpace(scratch)
	if len(s) == 0 || s[0] != '$' {
		return nil, fmt.Errorf("%w: missing '$'", ErrMalformed)
	}
	payload := s[1:]

	if star := bytes.LastIndexByte(payload, '*'); star != -1 {
		ck := bytes.TrimSpace(payload[star+1:])
		if len(ck) < 2 {
			return nil, fmt.Errorf("%w: short checksum", ErrMalformed)
		}
		want, err := hex.DecodeString(string(ck[:2]))
		if err != nil || len(want) != 1 {
			return nil, fmt.Errorf("%w: bad checksum", ErrMalformed)
		}
		payload = payload[:star]
		got := byte(0)
		for i := 0; i < len(payload); i++ {
			got ^= payload[i]
		}
		if got != want[0] {
			return nil, fmt.Errorf("%w: checksum mismatch", ErrMalformed)
		}
	}

	fields := bytes.Split(payload, []byte{','})
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: no fields", ErrMalformed)
	}
	return fields, nil
}

// field returns fields[i] as a trimmed string, or "" when the slot is
// absent or blank.
func field(fields [][]byte, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(string(fields[i]))
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatPtr(s string) *float64 {
	if v, ok := parseFloat(s); ok {
		return &v
	}
	return nil
}

func intPtr(s string) *int {
	if v, ok := parseInt(s); ok {
		return &v
	}
	return nil
}

// parseLatLon parses NMEA lat/lon in ddmm.mmmm or dddmm.mmmm plus
// hemisphere into signed decimal degrees.
//
// For latitude (N/S): ddmm.mmmm
// For longitude (E/W): dddmm.mmmm
func parseLatLon(v string, hemi string) (float64, bool) {
	hemi = strings.ToUpper(hemi)
	if v == "" || (hemi != "N" && hemi != "S" && hemi != "E" && hemi != "W") {
		return 0, false
	}

	// The last two digits of the integer part are whole minutes.
	dot := strings.IndexByte(v, '.')
	intPart := v
	if dot != -1 {
		intPart = v[:dot]
	}
	if len(intPart) < 3 {
		return 0, false
	}

	degPart := intPart[:len(intPart)-2]
	minPart := v[len(intPart)-2:]

	deg, err := strconv.Atoi(degPart)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return 0, false
	}

	dec := float64(deg) + (mins / 60.0)
	if hemi == "S" || hemi == "W" {
		dec = -dec
	}
	return dec, true
}
