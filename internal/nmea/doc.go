package nmea

// Package nmea classifies NMEA 0183 sentences and decodes them into typed
// records.
//
// The package is intentionally small and geared toward GNSS bring-up:
// - Classify a sentence by its 6-character prefix ($ + talker + type)
// - Parse GGA, GSA, GSV and VTG into tagged records
// - Never mutate the caller's sentence; decoders work on a private copy
