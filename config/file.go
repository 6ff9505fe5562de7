//go:build !tinygo

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"buttonled-go/errcode"
)

// File is the host configuration document. Durations are Go duration
// strings ("10ms"); empty fields keep their defaults.
type File struct {
	Timing  TimingFile  `toml:"timing"`
	Pins    PinsFile    `toml:"pins"`
	LED     LEDFile     `toml:"led"`
	Logging LoggingFile `toml:"logging"`
	Metrics MetricsFile `toml:"metrics"`
}

type TimingFile struct {
	Debounce  string `toml:"debounce"`
	LongPress string `toml:"long_press"`
	FastFlash string `toml:"fast_flash"`
	SlowFlash string `toml:"slow_flash"`
}

type PinsFile struct {
	Button     string `toml:"button"`
	ButtonPull string `toml:"button_pull"` // "none", "up", "down"
	LED        string `toml:"led"`
}

type LEDFile struct {
	InitialMode string `toml:"initial_mode"`
}

type LoggingFile struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

type MetricsFile struct {
	Addr string `toml:"addr"`
}

// LoadFile parses the TOML document at path.
func LoadFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return f, nil
}

// Apply overlays the non-empty durations of tf onto base.
func (tf TimingFile) Apply(base Timing) (Timing, error) {
	fields := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"debounce", tf.Debounce, &base.Debounce},
		{"long_press", tf.LongPress, &base.LongPress},
		{"fast_flash", tf.FastFlash, &base.FastFlash},
		{"slow_flash", tf.SlowFlash, &base.SlowFlash},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return base, &errcode.E{C: errcode.InvalidParams, Op: "config.timing", Msg: f.key, Err: err}
		}
		*f.dst = d
	}
	return base, base.Validate()
}
