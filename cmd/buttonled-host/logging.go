package main

import (
	"io"
	"log/slog"
	"strings"

	"buttonled-go/errcode"
)

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "log-level", Err: err}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "log-format", Msg: format}
	}
}
