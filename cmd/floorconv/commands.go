package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/katalvlaran/floormesh"
	"github.com/katalvlaran/floormesh/align"
	"github.com/katalvlaran/floormesh/batch"
	"github.com/katalvlaran/floormesh/config"
	"github.com/katalvlaran/floormesh/level"
	"github.com/katalvlaran/floormesh/pathcodec"
	"github.com/katalvlaran/floormesh/preview"
	"github.com/katalvlaran/floormesh/tileangle"
	"github.com/katalvlaran/floormesh/watch"
)

// errUsage marks wrong arguments to a command.
var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// message renders err in the configured language.
func (a *app) message(err error) string {
	return level.Message(err, a.cfg.Language())
}

func (a *app) batchOptions() (batch.Options, error) {
	opts := batch.Options{
		Auto:           a.cfg.Target == config.TargetAuto,
		Workers:        a.cfg.Workers,
		Verify:         a.cfg.Verify,
		PreviewFormat:  a.cfg.Preview.Format,
		PreviewOptions: a.previewOptions(),
	}
	if !opts.Auto {
		f, err := level.ParseFormat(a.cfg.Target)
		if err != nil {
			return opts, err
		}
		opts.Target = f
	}
	return opts, nil
}

func (a *app) previewOptions() preview.Options {
	opts := preview.DefaultOptions()
	opts.Size = a.cfg.Preview.Size
	opts.Margin = a.cfg.Preview.Margin
	opts.Stroke = a.cfg.Preview.Stroke
	return opts
}

func cmdConvert(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("o", "", "Output file (single input only; default: in place)")
	previews := fs.String("previews", "", "Directory for track previews")
	if err := fs.Parse(args); err != nil {
		return usage("convert: %v", err)
	}
	if fs.NArg() == 0 {
		return usage("convert: no input files")
	}

	opts, err := a.batchOptions()
	if err != nil {
		return err
	}
	opts.PreviewDir = *previews

	var results []batch.Result
	if *out != "" {
		if fs.NArg() != 1 {
			return usage("convert: -o needs exactly one input")
		}
		results = []batch.Result{batch.Convert(batch.Job{Src: fs.Arg(0), Dst: *out}, opts)}
	} else {
		jobs, err := batch.Collect(fs.Args(), a.cfg.HasExtension)
		if err != nil {
			return err
		}
		results = batch.Run(ctx, jobs, opts)
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(a.stderr, "%s: %s\n", r.Job.Src, a.message(r.Err))
		case r.Skipped:
			fmt.Fprintf(a.stdout, "%s: already %s\n", r.Job.Src, r.To)
		default:
			fmt.Fprintf(a.stdout, "%s: %s → %s (%d tiles)\n", r.Job.Src, r.From, r.To, r.Tiles)
		}
		if r.PreviewErr != nil {
			fmt.Fprintf(a.stderr, "%s: preview: %v\n", r.Job.Src, r.PreviewErr)
		}
	}
	if failed := batch.Failed(results); len(failed) > 0 {
		if len(results) == 1 {
			return failed[0].Err
		}
		return fmt.Errorf("convert: %d of %d files failed", len(failed), len(results))
	}
	return nil
}

func cmdExpand(_ context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return usage("expand: want exactly one path string")
	}
	angles, err := pathcodec.Expand(args[0])
	if err != nil {
		return err
	}
	data, err := json.Marshal(angles)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, string(data))
	return nil
}

func cmdCollapse(_ context.Context, a *app, args []string) error {
	angles := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return usage("collapse: argument %d: %v", i+1, err)
		}
		angles[i] = v
	}
	path, err := pathcodec.Collapse(angles)
	if err != nil {
		var ae *pathcodec.AngleError
		if errors.As(err, &ae) {
			return &level.ConversionError{Floor: ae.Floor, Angle: ae.Angle, Err: err}
		}
		return err
	}
	fmt.Fprintln(a.stdout, path)
	return nil
}

func cmdLabels(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("labels", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	planets := fs.Int("planets", 2, "Number of planets")
	reflect := fs.Bool("reflect", false, "Subtract the planet polygon interior angle")
	if err := fs.Parse(args); err != nil {
		return usage("labels: %v", err)
	}
	if fs.NArg() != 1 {
		return usage("labels: want exactly one level file")
	}

	angles, err := loadAngles(fs.Arg(0))
	if err != nil {
		return err
	}
	labels, err := tileangle.Labels(angles, tileangle.Options{Planets: *planets, Reflect: *reflect})
	if err != nil {
		return err
	}
	for _, l := range labels {
		fmt.Fprintf(a.stdout, "%d\t%s\n", l.Index, l)
	}
	return nil
}

func cmdDiff(_ context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return usage("diff: want two level files")
	}
	left, err := loadAngles(args[0])
	if err != nil {
		return err
	}
	right, err := loadAngles(args[1])
	if err != nil {
		return err
	}

	opts := align.DefaultOptions()
	opts.ReturnPath = true
	res, err := align.Align(left, right, &opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "distance: %s\n", strconv.FormatFloat(res.Distance, 'f', -1, 64))
	for _, c := range align.Divergences(left, right, res.Path, pathcodec.Tolerance) {
		fmt.Fprintf(a.stdout, "floor #%d ↔ #%d: %s° vs %s°\n", c.I+1, c.J+1,
			strconv.FormatFloat(left[c.I], 'f', -1, 64),
			strconv.FormatFloat(right[c.J], 'f', -1, 64))
	}
	return nil
}

func cmdRender(_ context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return usage("render: want a level file and an output image")
	}
	angles, err := loadAngles(args[0])
	if err != nil {
		return err
	}
	img, err := preview.Render(angles, a.previewOptions())
	if err != nil {
		return err
	}
	return preview.Write(args[1], img)
}

func cmdWatch(ctx context.Context, a *app, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = a.cfg.Watch.Dirs
	}
	if len(dirs) == 0 {
		return usage("watch: no directories")
	}
	if a.cfg.Target == config.TargetAuto {
		// toggling would flip every file back on its own write
		return usage("watch: -to must be legacy or mesh")
	}
	opts, err := a.batchOptions()
	if err != nil {
		return err
	}

	debounce := time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond
	w, err := watch.New(a.cfg.HasExtension, debounce, dirs...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	log := floormesh.Logger()

	err = w.Run(ctx, func(path string) {
		res := batch.Convert(batch.Job{Src: path}, opts)
		switch {
		case res.Err != nil:
			log.Warn("conversion failed", "file", path, "msg", a.message(res.Err))
		case !res.Skipped:
			fmt.Fprintf(a.stdout, "%s: %s → %s (%d tiles)\n", path, res.From, res.To, res.Tiles)
		}
	}, func(err error) {
		log.Warn("watcher error", "err", err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadAngles(path string) ([]float64, error) {
	doc, err := level.Load(path)
	if err != nil {
		return nil, err
	}
	return level.Angles(doc)
}
