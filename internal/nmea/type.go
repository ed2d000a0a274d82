package nmea

// Type identifies which decoder and record shape applies to a sentence.
type Type int

const (
	TypeUnknown Type = iota
	TypeGGA
	TypeGSA
	TypeGSV
	TypeVTG
)

func (t Type) String() string {
	switch t {
	case TypeGGA:
		return "GGA"
	case TypeGSA:
		return "GSA"
	case TypeGSV:
		return "GSV"
	case TypeVTG:
		return "VTG"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the type as its sentence name so NDJSON consumers
// don't have to know the enum numbering.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// prefixLen covers the delimiter, the 2-char talker ID and the 3-char
// sentence ID. Classification reads nothing past it.
const prefixLen = 6

// typeTable maps sentence prefixes to types. Checked linearly, first match
// wins, so prefixes must stay mutually exclusive; a duplicate entry would
// shadow everything after it (guarded by a test). Entries must stay in
// lock-step with the decoders table in parse.go.
//
// Note: the conventional prefix for VTG is $GPVTG. Some references
// circulate a $GPVTF transcription typo which would make VTG unreachable
// on real receivers.
var typeTable = []struct {
	prefix string
	typ    Type
}{
	{"$GPGGA", TypeGGA},
	{"$GPGSA", TypeGSA},
	{"$GPGSV", TypeGSV},
	{"$GPVTG", TypeVTG},
}

// Classify determines the sentence type from its first 6 characters.
// It never reads past the prefix and never mutates the input; sentences
// too short to carry a prefix classify as TypeUnknown.
//
// Safe for concurrent use: the table is read-only after init.
func Classify(sentence string) Type {
	if len(sentence) < prefixLen {
		return TypeUnknown
	}
	head := sentence[:prefixLen]
	for _, e := range typeTable {
		if head == e.prefix {
			return e.typ
		}
	}
	return TypeUnknown
}
