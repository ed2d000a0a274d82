package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Feed FeedConfig `yaml:"feed"`
	UDP  UDPConfig  `yaml:"udp"`
	Web  WebConfig  `yaml:"web"`
	PPS  PPSConfig  `yaml:"pps"`
}

type FeedConfig struct {
	// Source selects how sentences are ingested: "serial", "file" or "tcp".
	// When empty, defaults to "serial".
	Source string `yaml:"source"`

	// Device is the serial device path for Source=="serial".
	// Empty means auto-detect /dev/ttyACM*/ttyUSB*.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// Path is the sentence file for Source=="file".
	Path string `yaml:"path"`

	// Addr is host:port for Source=="tcp".
	Addr string `yaml:"addr"`
}

type UDPConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type WebConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

type PPSConfig struct {
	Enable bool   `yaml:"enable"`
	Chip   string `yaml:"chip"`
	Pin    int    `yaml:"pin"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	switch cfg.Feed.Source {
	case "":
		cfg.Feed.Source = "serial"
	case "serial", "file", "tcp":
	default:
		return Config{}, fmt.Errorf("feed.source must be serial, file or tcp")
	}
	if cfg.Feed.Source == "file" && cfg.Feed.Path == "" {
		return Config{}, fmt.Errorf("feed.path is required when feed.source is file")
	}
	if cfg.Feed.Source == "tcp" && cfg.Feed.Addr == "" {
		return Config{}, fmt.Errorf("feed.addr is required when feed.source is tcp")
	}
	if cfg.Feed.Baud == 0 {
		cfg.Feed.Baud = 9600
	}

	if cfg.UDP.Enable && cfg.UDP.Dest == "" {
		return Config{}, fmt.Errorf("udp.dest is required when udp.enable is true")
	}

	if cfg.Web.Enable && cfg.Web.Listen == "" {
		cfg.Web.Listen = ":8080"
	}

	if cfg.PPS.Enable {
		if cfg.PPS.Pin <= 0 {
			return Config{}, fmt.Errorf("pps.pin is required when pps.enable is true")
		}
		if cfg.PPS.Chip == "" {
			cfg.PPS.Chip = "/dev/gpiochip0"
		}
	}

	return cfg, nil
}
