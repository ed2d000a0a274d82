package feed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nmea-hub/internal/nmea"
)

func TestFeedState_CountsByType(t *testing.T) {
	st := newFeedState(Config{Source: "file"})
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	lines := []string{
		nmeaLine("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"),
		nmeaLine("GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1"),
		nmeaLine("GPGSV,2,1,08,01,40,083,46,02,17,308,41,12,07,344,39,14,22,228,45"),
		nmeaLine("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K"),
		nmeaLine("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K"),
	}
	var got int
	for _, line := range lines {
		if rec := st.apply(now, line); rec != nil {
			got++
		}
	}

	snap := st.snapshot()
	if got != 5 || snap.Records != 5 {
		t.Fatalf("records=%d (sink %d) want 5", snap.Records, got)
	}
	if snap.GGA != 1 || snap.GSA != 1 || snap.GSV != 1 || snap.VTG != 2 {
		t.Fatalf("counts gga=%d gsa=%d gsv=%d vtg=%d", snap.GGA, snap.GSA, snap.GSV, snap.VTG)
	}
	if snap.LastRecordUTC == "" {
		t.Fatalf("expected last record timestamp")
	}
}

func TestFeedState_DropsBadChecksum(t *testing.T) {
	st := newFeedState(Config{Source: "file"})
	line := nmeaLine("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	bad := line[:len(line)-2] + "00"

	if rec := st.apply(time.Now().UTC(), bad); rec != nil {
		t.Fatalf("expected drop, got %+v", rec)
	}
	snap := st.snapshot()
	if snap.Dropped != 1 || snap.Records != 0 {
		t.Fatalf("dropped=%d records=%d want 1/0", snap.Dropped, snap.Records)
	}
}

func TestFeedState_CountsUnknownAndMalformed(t *testing.T) {
	st := newFeedState(Config{Source: "file"})
	now := time.Now().UTC()

	if rec := st.apply(now, nmeaLine("GPXYZ,1,2,3")); rec != nil {
		t.Fatalf("expected no record for unknown type")
	}
	if rec := st.apply(now, "$GPGGA,123519"); rec != nil {
		t.Fatalf("expected no record for malformed payload")
	}

	snap := st.snapshot()
	if snap.Unknown != 1 {
		t.Fatalf("unknown=%d want 1", snap.Unknown)
	}
	if snap.Malformed != 1 {
		t.Fatalf("malformed=%d want 1", snap.Malformed)
	}
	if snap.LastError == "" {
		t.Fatalf("expected last error from malformed line")
	}
}

func TestService_FileSourceDeliversRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.nmea")
	contents := strings.Join([]string{
		nmeaLine("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"),
		"noise without delimiter",
		nmeaLine("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K"),
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	recCh := make(chan nmea.Record, 8)
	s := New(Config{Source: "file", Path: path}, func(r nmea.Record) {
		recCh <- r
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	var types []nmea.Type
	timeout := time.After(2 * time.Second)
	for len(types) < 2 {
		select {
		case r := <-recCh:
			types = append(types, r.RecordType())
		case <-timeout:
			t.Fatalf("timed out, got %v", types)
		}
	}
	if types[0] != nmea.TypeGGA || types[1] != nmea.TypeVTG {
		t.Fatalf("types=%v want [GGA VTG]", types)
	}
}

func TestService_StartTwiceIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.nmea")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(Config{Source: "file", Path: path}, nil)
	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	s.Close()
}

func TestService_MissingFileFails(t *testing.T) {
	s := New(Config{Source: "file", Path: filepath.Join(t.TempDir(), "nope")}, nil)
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if s.Snapshot().LastError == "" {
		t.Fatalf("expected last error in snapshot")
	}
}
