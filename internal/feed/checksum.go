package feed

import "encoding/hex"

// checksumOK pre-filters obvious line noise before the line reaches the
// decoder: the line must start with '$', and when a '*hh' trailer is
// present the XOR of the payload must match it. Lines without a trailer
// pass; the decoder tolerates them too.
func checksumOK(line string) bool {
	if len(line) == 0 || line[0] != '$' {
		return false
	}
	star := -1
	for i := len(line) - 1; i > 0; i-- {
		if line[i] == '*' {
			star = i
			break
		}
	}
	if star == -1 {
		return true
	}
	ck := line[star+1:]
	if len(ck) < 2 {
		return false
	}
	want, err := hex.DecodeString(ck[:2])
	if err != nil || len(want) != 1 {
		return false
	}
	got := byte(0)
	for i := 1; i < star; i++ {
		got ^= line[i]
	}
	return got == want[0]
}
