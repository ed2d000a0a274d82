package nmea

// Record is the common shape of a decoded sentence. The set of
// implementations is closed: every record embeds Header, and the
// unexported stamp method keeps outside packages from adding variants
// the dispatcher doesn't know about.
type Record interface {
	// RecordType returns the tag stamped by Parse. It always equals
	// Classify of the original sentence, regardless of what the decoder
	// itself saw.
	RecordType() Type

	stamp(Type)
}

// Header is embedded in every record and carries the type tag.
// Decoders leave it zero; Parse stamps it from classification so the tag
// can't drift from the routing decision.
type Header struct {
	Type Type `json:"type"`
}

func (h *Header) RecordType() Type { return h.Type }

func (h *Header) stamp(t Type) { h.Type = t }

// Satellite is one satellite block from a GSV sentence.
type Satellite struct {
	PRN          int  `json:"prn"`
	ElevationDeg *int `json:"elevation_deg,omitempty"`
	AzimuthDeg   *int `json:"azimuth_deg,omitempty"`
	// SNRdB is nil when the satellite is in view but not tracked.
	SNRdB *int `json:"snr_db,omitempty"`
}

// GGA is a Global Positioning System Fix Data record.
type GGA struct {
	Header

	// TimeUTC is the raw hhmmss.sss field; empty when the receiver has no
	// time yet.
	TimeUTC string `json:"time_utc,omitempty"`

	LatDeg *float64 `json:"lat_deg,omitempty"`
	LonDeg *float64 `json:"lon_deg,omitempty"`

	// FixQuality 0 means no fix; lat/lon may still be absent then.
	FixQuality int `json:"fix_quality"`

	Satellites *int     `json:"satellites,omitempty"`
	HDOP       *float64 `json:"hdop,omitempty"`
	AltM       *float64 `json:"alt_m,omitempty"`
	GeoidSepM  *float64 `json:"geoid_sep_m,omitempty"`
}

// GSA is a GNSS DOP and Active Satellites record.
type GSA struct {
	Header

	// Mode is "A" (automatic 2D/3D selection) or "M" (manual).
	Mode string `json:"mode"`

	// FixType is 1 (no fix), 2 (2D) or 3 (3D).
	FixType int `json:"fix_type"`

	// PRNs lists the satellites used in the solution, blank slots omitted.
	PRNs []int `json:"prns,omitempty"`

	PDOP *float64 `json:"pdop,omitempty"`
	HDOP *float64 `json:"hdop,omitempty"`
	VDOP *float64 `json:"vdop,omitempty"`
}

// GSV is a GNSS Satellites in View record. One sentence carries at most
// four satellite blocks; InView may exceed len(Satellites) when the
// receiver splits the report across messages.
type GSV struct {
	Header

	TotalMessages int `json:"total_messages"`
	MessageNumber int `json:"message_number"`
	InView        int `json:"in_view"`

	Satellites []Satellite `json:"satellites,omitempty"`
}

// VTG is a Track Made Good and Ground Speed record.
type VTG struct {
	Header

	TrackTrueDeg *float64 `json:"track_true_deg,omitempty"`
	TrackMagDeg  *float64 `json:"track_mag_deg,omitempty"`
	SpeedKt      *float64 `json:"speed_kt,omitempty"`
	SpeedKmh     *float64 `json:"speed_kmh,omitempty"`
}
