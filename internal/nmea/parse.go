package nmea

import "errors"

// ErrTypeNotUnderstood is returned by Parse when the sentence prefix
// matches no registry entry. It is raised by the dispatcher itself; no
// decoder runs for an unrecognized sentence.
var ErrTypeNotUnderstood = errors.New("nmea: sentence type not understood")

// ErrMalformed is the base for decoder failures on recognized sentences
// whose payload fails grammar or semantic validation. Decoders wrap it
// with per-sentence context; match with errors.Is.
var ErrMalformed = errors.New("nmea: malformed sentence")

// decoders maps each type to its decoder. Built once, read-only after
// init; must stay in lock-step with typeTable.
//
// A decoder receives a private scratch copy of the sentence which it may
// rewrite in place, and must not retain past return. It returns the
// record without a tag (Parse stamps it) or an error with no record.
var decoders = map[Type]func(scratch []byte) (Record, error){
	TypeGGA: decodeGGA,
	TypeGSA: decodeGSA,
	TypeGSV: decodeGSV,
	TypeVTG: decodeVTG,
}

// Parse classifies sentence and routes it to the matching decoder.
//
// On success the returned record is fully owned by the caller and its
// RecordType equals Classify(sentence); the tag comes from classification,
// never from the decoder. On failure the record is nil and the error is
// either ErrTypeNotUnderstood or the decoder's error, propagated verbatim.
//
// The caller's sentence is never mutated: decoders get a fresh copy that
// dies with the call. Safe for concurrent use.
func Parse(sentence string) (Record, error) {
	t := Classify(sentence)
	if t == TypeUnknown {
		return nil, ErrTypeNotUnderstood
	}

	// Private mutable copy; decoders tokenize destructively.
	scratch := []byte(sentence)

	rec, err := decoders[t](scratch)
	if err != nil {
		return nil, err
	}
	rec.stamp(t)
	return rec, nil
}
