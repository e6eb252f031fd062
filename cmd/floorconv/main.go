// Command floorconv converts level tracks between the legacy path string
// and the mesh angle list, and inspects them.
//
// Usage:
//
//	floorconv [-config file] [-to auto|legacy|mesh] [-lang tag] [-log-level lvl]
//	          [-workers n] [-verify] <command> [args]
//
// Commands:
//
//	convert [-o out] [-previews dir] files|dirs...   convert level files
//	expand PATH                                      print the angles of a path string
//	collapse ANGLE...                                print the path string of angles
//	labels [-planets n] [-reflect] FILE              print per-tile turn labels
//	diff A B                                         align two levels and list divergences
//	render FILE OUT.png|OUT.webp                     draw a track preview
//	watch [dirs...]                                  convert files in place as they change
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/floormesh"
	"github.com/katalvlaran/floormesh/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app carries the resolved configuration and output streams into commands.
type app struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"convert":  cmdConvert,
	"expand":   cmdExpand,
	"collapse": cmdCollapse,
	"labels":   cmdLabels,
	"diff":     cmdDiff,
	"render":   cmdRender,
	"watch":    cmdWatch,
}

// run parses global flags, resolves configuration, installs the logger and
// dispatches to a command. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("floorconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "Path to a YAML config file")
	target := fs.String("to", "", "Target format: auto, legacy or mesh (default: auto)")
	lang := fs.String("lang", "", "Message language, BCP 47 (default: en)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (default: info)")
	workers := fs.Int("workers", 0, "Concurrent conversions (default: NumCPU)")
	verify := fs.Bool("verify", false, "Re-expand every conversion and compare geometry")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return exitFailure
		}
	}
	if err := cfg.Resolve(config.Flags{
		Target:   *target,
		Lang:     *lang,
		LogLevel: *logLevel,
		Workers:  *workers,
		Verify:   *verify,
	}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrBadTarget) || errors.Is(err, config.ErrBadLogLevel) ||
			errors.Is(err, config.ErrBadLang) {
			return exitUsage
		}
		return exitFailure
	}

	lvl, _ := cfg.Level()
	floormesh.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})))
	defer floormesh.SetLogger(nil)

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "Error: missing command")
		fs.Usage()
		return exitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", rest[0])
		return exitUsage
	}

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}
	if err := cmd(ctx, a, rest[1:]); err != nil {
		fmt.Fprintln(stderr, a.message(err))
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}
