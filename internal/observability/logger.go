// Package observability sets up process-wide logging.
package observability

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the logger.
type Options struct {
	Level string
	// File receives the logs when set. Otherwise Output is used.
	File   string
	Output io.Writer
	// Console switches to zerolog's human readable writer.
	Console bool
	Service string
}

// Setup configures the global zerolog logger and returns it together with a
// close function for the log file, if any.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)

	closer := func() error { return nil }
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrapf(err, "open log file %s", opts.File)
		}
		out = f
		closer = f.Close
	} else if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	logger := ctx.Logger()
	log.Logger = logger

	return logger, closer, nil
}
