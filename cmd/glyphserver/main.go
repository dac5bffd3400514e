// seehuhn.de/go/glyphedit - inspect and edit glyph outlines of font files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Glyphserver serves the glyph editor API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/internal/buildinfo"
	"seehuhn.de/go/glyphedit/internal/profile"
	"seehuhn.de/go/glyphedit/query"
	"seehuhn.de/go/glyphedit/server"
)

const defaultPort = "3001"

type config struct {
	addr        string
	defaultFont string
	maxUpload   int64
	logLevel    slog.Level
	version     bool
	profile     *profile.Flags
}

func parseConfig(args []string, getenv func(string) string, out io.Writer) (*config, error) {
	fs := flag.NewFlagSet("glyphserver", flag.ContinueOnError)
	fs.SetOutput(out)

	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	cfg := &config{}
	var level string
	fs.StringVar(&cfg.addr, "addr", net.JoinHostPort("", port),
		"listen `address` (default port from $PORT)")
	fs.StringVar(&cfg.defaultFont, "default-font", getenv("GLYPHEDIT_DEFAULT_FONT"),
		"font `file` for glyph queries (default $GLYPHEDIT_DEFAULT_FONT, or the built-in Go Regular font)")
	fs.Int64Var(&cfg.maxUpload, "max-upload", server.DefaultMaxUpload, "maximum request size in `bytes`")
	fs.StringVar(&level, "log-level", "info", "log `level` (debug, info, warn, error)")
	fs.BoolVar(&cfg.version, "version", false, "print version information and exit")
	cfg.profile = profile.AddFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(out, "glyphserver \u2014 serve the glyph editor API\n")
		fmt.Fprintf(out, "%s\n\n", buildinfo.Short("glyphserver"))
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  glyphserver [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  glyphserver\n")
		fmt.Fprintf(out, "  PORT=8080 glyphserver -default-font DejaVuSans.ttf\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if err := cfg.logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	if cfg.maxUpload <= 0 {
		return nil, fmt.Errorf("invalid upload limit %d", cfg.maxUpload)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.version {
		fmt.Println(buildinfo.Short("glyphserver"))
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	glyphedit.SetLogger(logger)

	stop, err := cfg.profile.Start()
	if err != nil {
		return err
	}
	defer stop()

	svc := loadDefaultFont(cfg.defaultFont)

	srv := &http.Server{
		Addr: cfg.addr,
		Handler: server.New(&server.Config{
			Query:     svc,
			MaxUpload: cfg.maxUpload,
			Logger:    logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info("server running",
		"addr", cfg.addr,
		"version", buildinfo.Short("glyphserver"),
		"defaultFont", svc.Source(),
		"ready", svc.Ready())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// loadDefaultFont loads the font used for glyph queries.  If fname is
// empty, the built-in Go Regular font is used.
func loadDefaultFont(fname string) *query.Service {
	if fname == "" {
		return query.LoadBytes(goregular.TTF, "goregular.ttf")
	}
	return query.Load(fname)
}
