package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"buttonled-go/config"
	"buttonled-go/errcode"
	"buttonled-go/hal"
	"buttonled-go/types"
)

// options are the raw command line values. Precedence is
// CLI flags > config file > flag defaults.
type options struct {
	Config      string
	ButtonPin   string
	ButtonPull  string
	LEDPin      string
	InitialMode string
	LogLevel    string
	LogFormat   string
	MetricsAddr string
	FakePins    bool
}

func bindFlags(flags *pflag.FlagSet, o *options) {
	flags.StringVarP(&o.Config, "config", "c", "buttonled.toml", "Path to configuration file")
	flags.StringVar(&o.ButtonPin, "button-pin", "GPIO13", "Button line (periph name, or number with --fake-pins)")
	flags.StringVar(&o.ButtonPull, "button-pull", "down", "Button pull resistor (none, up, down)")
	flags.StringVar(&o.LEDPin, "led-pin", "GPIO2", "LED line (periph name, or number with --fake-pins)")
	flags.StringVar(&o.InitialMode, "initial-mode", types.DefaultLedMode.String(), "Initial LED mode (fast_flash, slow_flash, on, off)")
	flags.StringVar(&o.LogLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	flags.StringVar(&o.LogFormat, "log-format", "text", "Logging format (text, json)")
	flags.StringVar(&o.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (empty disables)")
	flags.BoolVar(&o.FakePins, "fake-pins", false, "Simulate the GPIO lines and read presses from stdin")
}

// settings are the validated values run works from.
type settings struct {
	timing      config.Timing
	buttonPin   string
	buttonPull  hal.Pull
	ledPin      string
	initial     types.LedMode
	logLevel    string
	logFormat   string
	metricsAddr string
	fakePins    bool
}

func resolve(cmd *cobra.Command, o *options) (settings, error) {
	var file config.File
	if o.Config != "" {
		f, err := config.LoadFile(o.Config)
		switch {
		case err == nil:
			file = f
		case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
			// The default path is optional.
		default:
			return settings{}, err
		}
	}

	pick := func(flag, cli, fromFile string) string {
		if cmd.Flags().Changed(flag) || fromFile == "" {
			return cli
		}
		return fromFile
	}

	timing, err := file.Timing.Apply(config.Default())
	if err != nil {
		return settings{}, err
	}

	mode, err := types.ParseLedMode(pick("initial-mode", o.InitialMode, file.LED.InitialMode))
	if err != nil {
		return settings{}, &errcode.E{C: errcode.InvalidParams, Op: "initial-mode", Err: err}
	}

	pull := strings.ToLower(pick("button-pull", o.ButtonPull, file.Pins.ButtonPull))
	switch pull {
	case "none", "up", "down":
	default:
		return settings{}, &errcode.E{C: errcode.InvalidParams, Op: "button-pull", Msg: pull}
	}

	return settings{
		timing:      timing,
		buttonPin:   pick("button-pin", o.ButtonPin, file.Pins.Button),
		buttonPull:  hal.ParsePull(pull),
		ledPin:      pick("led-pin", o.LEDPin, file.Pins.LED),
		initial:     mode,
		logLevel:    pick("log-level", o.LogLevel, file.Logging.Level),
		logFormat:   pick("log-format", o.LogFormat, file.Logging.Format),
		metricsAddr: pick("metrics-addr", o.MetricsAddr, file.Metrics.Addr),
		fakePins:    o.FakePins,
	}, nil
}
