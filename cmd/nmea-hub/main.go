package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nmea-hub/internal/config"
	"nmea-hub/internal/feed"
	"nmea-hub/internal/nmea"
	"nmea-hub/internal/pps"
	"nmea-hub/internal/udp"
	"nmea-hub/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("nmea-hub starting")

	var publisher *udp.Publisher
	if cfg.UDP.Enable {
		publisher, err = udp.NewPublisher(cfg.UDP.Dest)
		if err != nil {
			log.Fatalf("udp publisher init failed: %v", err)
		}
		defer publisher.Close()
		log.Printf("udp dest=%s", cfg.UDP.Dest)
	}

	var hub *web.Hub
	if cfg.Web.Enable {
		hub = web.NewHub()
	}

	sink := func(rec nmea.Record) {
		if publisher != nil {
			if err := publisher.Publish(rec); err != nil {
				log.Printf("udp publish failed: %v", err)
			}
		}
		if hub != nil {
			hub.Broadcast(rec)
		}
	}

	feedSvc := feed.New(feed.Config{
		Source: cfg.Feed.Source,
		Device: cfg.Feed.Device,
		Baud:   cfg.Feed.Baud,
		Path:   cfg.Feed.Path,
		Addr:   cfg.Feed.Addr,
	}, sink)
	if err := feedSvc.Start(ctx); err != nil {
		// Feed trouble (missing receiver, wrong device) should not bring
		// the process down; status keeps the error visible.
		log.Printf("feed start failed: %v", err)
	}
	defer feedSvc.Close()

	var ppsSvc *pps.Service
	if cfg.PPS.Enable {
		ppsSvc = pps.New(pps.Config{Chip: cfg.PPS.Chip, Pin: cfg.PPS.Pin})
		if err := ppsSvc.Start(); err != nil {
			log.Printf("pps start failed: %v", err)
		}
		defer ppsSvc.Close()
	}

	if cfg.Web.Enable {
		src := web.StatusSource{Feed: feedSvc.Snapshot}
		if ppsSvc != nil {
			src.PPS = ppsSvc.Snapshot
		}
		h := web.Handler(time.Now().UTC(), src, hub)
		go func() {
			log.Printf("web listening on %s", cfg.Web.Listen)
			if err := web.Run(ctx, cfg.Web.Listen, h); err != nil && ctx.Err() == nil {
				log.Printf("web server stopped: %v", err)
				cancel()
			}
		}()
		defer func() {
			if hub != nil {
				hub.CloseAll()
			}
		}()
	}

	<-ctx.Done()
	log.Printf("nmea-hub stopping")
}
