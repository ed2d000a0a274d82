package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"nmea-hub/internal/nmea"
)

// Config controls the sentence feed.
//
// Typical USB GNSS receivers (u-blox and friends) appear as /dev/ttyACM*
// and emit NMEA at 9600 baud by default.
//
// Note: this is a best-effort bring-up service; feed failures should not
// bring down the main process.
type Config struct {
	// Source selects ingestion: "serial" (default), "file" or "tcp".
	Source string

	// Device is the serial device path; empty means auto-detect.
	Device string
	Baud   int

	// Path is the sentence file for Source=="file".
	Path string

	// Addr is host:port for Source=="tcp".
	Addr string
}

// Sink receives every successfully decoded record. It is called from the
// feed goroutine and must not block for long.
type Sink func(nmea.Record)

type Snapshot struct {
	Enabled bool   `json:"enabled"`
	Source  string `json:"source,omitempty"`
	Device  string `json:"device,omitempty"`
	Baud    int    `json:"baud,omitempty"`

	Lines     uint64 `json:"lines"`
	Records   uint64 `json:"records"`
	Dropped   uint64 `json:"dropped"`
	Unknown   uint64 `json:"unknown"`
	Malformed uint64 `json:"malformed"`

	GGA uint64 `json:"gga"`
	GSA uint64 `json:"gsa"`
	GSV uint64 `json:"gsv"`
	VTG uint64 `json:"vtg"`

	LastRecordUTC string `json:"last_record_utc,omitempty"`
	LastError     string `json:"last_error,omitempty"`
}

type Service struct {
	cfg  Config
	sink Sink

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last atomic.Value // Snapshot

	mu     sync.Mutex
	closer io.Closer
}

func New(cfg Config, sink Sink) *Service {
	s := &Service{cfg: cfg, sink: sink}
	src := strings.ToLower(strings.TrimSpace(cfg.Source))
	if src == "" {
		src = "serial"
	}
	s.cfg.Source = src
	s.last.Store(Snapshot{Enabled: true, Source: src, Device: cfg.Device, Baud: cfg.Baud})
	return s
}

func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("feed service is nil")
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	rc, desc, err := s.openLocked(ctx)
	if err != nil {
		s.setError(err.Error())
		return err
	}
	s.closer = rc

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			_ = rc.Close()
		}()

		log.Printf("feed started %s", desc)

		st := newFeedState(s.cfg)
		scanner := bufio.NewScanner(rc)
		// NMEA sentences are typically < 82 chars, but allow some headroom.
		scanner.Buffer(make([]byte, 0, 256), 4096)

		for {
			select {
			case <-childCtx.Done():
				return
			default:
			}

			if !scanner.Scan() {
				err := scanner.Err()
				if err == nil {
					err = io.EOF
				}
				s.setError(fmt.Sprintf("feed read stopped: %v", err))
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if rec := st.apply(time.Now().UTC(), line); rec != nil && s.sink != nil {
				s.sink(rec)
			}
			s.last.Store(st.snapshot())
		}
	}()

	return nil
}

func (s *Service) openLocked(ctx context.Context) (io.ReadCloser, string, error) {
	switch s.cfg.Source {
	case "file":
		f, err := os.Open(s.cfg.Path)
		if err != nil {
			return nil, "", fmt.Errorf("feed open file: %w", err)
		}
		return f, fmt.Sprintf("source=file path=%s", s.cfg.Path), nil

	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", s.cfg.Addr)
		if err != nil {
			return nil, "", fmt.Errorf("feed dial %s: %w", s.cfg.Addr, err)
		}
		return conn, fmt.Sprintf("source=tcp addr=%s", s.cfg.Addr), nil

	default: // serial
		device := strings.TrimSpace(s.cfg.Device)
		if device == "" {
			device = autoDetectDevice()
			if device == "" {
				return nil, "", fmt.Errorf("feed auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			}
			s.cfg.Device = device
		}
		baud := s.cfg.Baud
		if baud == 0 {
			baud = 9600
		}
		f, err := openSerial(device, baud)
		if err != nil {
			return nil, "", fmt.Errorf("feed open device=%s baud=%d: %w", device, baud, err)
		}
		return f, fmt.Sprintf("source=serial device=%s baud=%d", device, baud), nil
	}
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

func (s *Service) setError(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	// Do not drop counters on transient errors; keep the last snapshot.
	s.last.Store(cur)
}

// feedState accumulates per-line counters; it lives on the feed goroutine
// and is published through atomic snapshots only.
type feedState struct {
	snap Snapshot
}

func newFeedState(cfg Config) *feedState {
	return &feedState{snap: Snapshot{
		Enabled: true,
		Source:  cfg.Source,
		Device:  cfg.Device,
		Baud:    cfg.Baud,
	}}
}

// apply consumes one trimmed line and returns the decoded record, or nil
// when the line was dropped or failed to decode.
func (st *feedState) apply(nowUTC time.Time, line string) nmea.Record {
	st.snap.Lines++

	if !checksumOK(line) {
		st.snap.Dropped++
		return nil
	}

	rec, err := nmea.Parse(line)
	if err != nil {
		switch {
		case errors.Is(err, nmea.ErrTypeNotUnderstood):
			st.snap.Unknown++
		default:
			st.snap.Malformed++
			// Avoid spamming on bad noise; just keep the last error.
			st.snap.LastError = err.Error()
		}
		return nil
	}

	st.snap.Records++
	switch rec.RecordType() {
	case nmea.TypeGGA:
		st.snap.GGA++
	case nmea.TypeGSA:
		st.snap.GSA++
	case nmea.TypeGSV:
		st.snap.GSV++
	case nmea.TypeVTG:
		st.snap.VTG++
	}
	st.snap.LastRecordUTC = nowUTC.Format(time.RFC3339Nano)
	return rec
}

func (st *feedState) snapshot() Snapshot {
	return st.snap
}

func autoDetectDevice() string {
	// Keep it intentionally tiny and predictable.
	candidates := []string{}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
