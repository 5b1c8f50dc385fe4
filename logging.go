package tracker

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

func logColors(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(f.Fd()) {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func GetSlogHandler(debug bool, out io.Writer) slog.Handler {
	return tint.NewHandler(out, &tint.Options{
		AddSource: true,
		Level:     logLevel(debug),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if _, ok := attr.Value.Any().(error); attr.Key == "err" || ok {
				return tint.Attr(9, attr)
			}
			return attr
		},
		TimeFormat: time.RFC3339,
		NoColor:    !logColors(out),
	})
}

// SetupLogging installs the default logger. If logDir is set, records are also
// written as JSON to a rotated build.log inside it.
func SetupLogging(debug bool, logDir string) (io.Closer, error) {
	console := GetSlogHandler(debug, os.Stderr)
	if logDir == "" {
		slog.SetDefault(slog.New(console))
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "build.log"),
		MaxSize:    20,
		MaxBackups: 5,
		Compress:   true,
	}
	file := slog.NewJSONHandler(rotated, &slog.HandlerOptions{Level: logLevel(debug)})

	slog.SetDefault(slog.New(slogmulti.Fanout(console, file)))
	return rotated, nil
}
