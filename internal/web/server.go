package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nmea-hub/internal/feed"
	"nmea-hub/internal/pps"
)

// StatusSource supplies the live snapshots rendered by /api/status.
// Nil funcs are rendered as absent sections.
type StatusSource struct {
	Feed func() feed.Snapshot
	PPS  func() pps.Snapshot
}

type statusPayload struct {
	StartUTC  string         `json:"start_utc"`
	UptimeSec float64        `json:"uptime_sec"`
	Feed      *feed.Snapshot `json:"feed,omitempty"`
	PPS       *pps.Snapshot  `json:"pps,omitempty"`
}

func Handler(start time.Time, src StatusSource, hub *Hub) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		now := time.Now().UTC()
		payload := statusPayload{
			StartUTC:  start.UTC().Format(time.RFC3339Nano),
			UptimeSec: now.Sub(start).Seconds(),
		}
		if src.Feed != nil {
			snap := src.Feed()
			payload.Feed = &snap
		}
		if src.PPS != nil {
			snap := src.PPS()
			payload.PPS = &snap
		}

		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			http.Error(w, "marshal failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
		_, _ = w.Write([]byte("\n"))
	})

	if hub != nil {
		mux.HandleFunc("/ws", hub.HandleWS)
	}

	return mux
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
