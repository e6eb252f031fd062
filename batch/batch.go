// Package batch converts many level files with a fixed worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/floormesh"
	"github.com/katalvlaran/floormesh/level"
	"github.com/katalvlaran/floormesh/preview"
)

// ErrVerify indicates a conversion whose re-expanded track differs from the source.
var ErrVerify = errors.New("batch: converted track does not match the original")

// Job is one file to convert. An empty Dst converts in place. Preview is
// the image path written when Options.PreviewDir is set; Run fills it
// when empty.
type Job struct {
	Src     string
	Dst     string
	Preview string
}

// Options configures a batch run.
type Options struct {
	// Auto toggles each level; otherwise every level is brought to Target.
	Auto    bool
	Target  level.Format
	Workers int
	// Verify re-expands both tracks and fails the job when they differ.
	Verify bool
	// PreviewDir, when set, receives one image per converted level named
	// after the source file with PreviewFormat as extension.
	PreviewDir     string
	PreviewFormat  string
	PreviewOptions preview.Options
}

// Result holds the outcome of one job.
type Result struct {
	Job     Job
	From    level.Format
	To      level.Format
	Tiles   int
	Skipped bool // already in the target format, nothing written
	Err     error
	// PreviewErr reports a failed preview of a level that was converted
	// and saved; Err stays nil in that case.
	PreviewErr error
}

// Run processes jobs on opts.Workers goroutines and returns one Result per
// job, in job order. Jobs not started before ctx is done report ctx.Err().
// With a PreviewDir, every job gets a distinct preview path first.
func Run(ctx context.Context, jobs []Job, opts Options) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}
	jobs = assignPreviews(jobs, opts)
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	log := floormesh.Logger()
	start := time.Now()
	var processed, failed atomic.Int64

	jobCh := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Job: jobs[idx], Err: err}
				} else {
					results[idx] = Convert(jobs[idx], opts)
				}
				if results[idx].Err != nil {
					failed.Add(1)
				}
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	log.Info("batch finished",
		"files", processed.Load(),
		"failed", failed.Load(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// Convert runs a single job synchronously.
func Convert(job Job, opts Options) Result {
	res := Result{Job: job}
	log := floormesh.Logger().With("file", job.Src)

	doc, err := level.Load(job.Src)
	if err != nil {
		res.Err = err
		return res
	}
	res.From = doc.Format()
	res.Tiles = doc.Len()

	target := opts.Target
	if opts.Auto {
		target = doc.Format().Other()
	}
	res.To = target
	if doc.Format() == target && job.Dst == "" {
		res.Skipped = true
		log.Debug("already in target format", "format", target)
		return res
	}

	out, err := level.ConvertTo(doc, target)
	if err != nil {
		res.Err = err
		log.Warn("conversion failed", "err", err)
		return res
	}

	if opts.Verify {
		same, err := level.Verify(doc, out)
		if err != nil {
			res.Err = err
			return res
		}
		if !same {
			res.Err = fmt.Errorf("%w: %s", ErrVerify, job.Src)
			return res
		}
	}

	dst := job.Dst
	if dst == "" {
		dst = job.Src
	}
	if err := level.Save(dst, out); err != nil {
		res.Err = err
		return res
	}
	log.Info("converted", "from", res.From, "to", res.To, "tiles", res.Tiles, "dst", dst)

	if opts.PreviewDir != "" {
		if err := writePreview(job, out, opts); err != nil {
			res.PreviewErr = err
			log.Warn("preview failed", "err", err)
		}
	}
	return res
}

// Collect walks roots and returns an in-place Job for every file accepted
// by match. Plain file roots are taken as they are.
func Collect(roots []string, match func(path string) bool) ([]Job, error) {
	var jobs []Job
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if path == root || match(path) {
				jobs = append(jobs, Job{Src: path})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("batch: collect %s: %w", root, err)
		}
	}
	return jobs, nil
}

// Failed returns the results carrying an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// assignPreviews returns a copy of jobs where each job without a preview
// path gets one in opts.PreviewDir. Levels sharing a base name get "-2",
// "-3", ... suffixes in job order.
func assignPreviews(jobs []Job, opts Options) []Job {
	if opts.PreviewDir == "" {
		return jobs
	}
	out := make([]Job, len(jobs))
	copy(out, jobs)

	used := make(map[string]bool, len(out))
	for _, j := range out {
		if j.Preview != "" {
			used[strings.ToLower(j.Preview)] = true
		}
	}
	for i := range out {
		if out[i].Preview != "" {
			continue
		}
		base := previewBase(out[i].Src)
		path := previewPath(opts, base)
		for n := 2; used[strings.ToLower(path)]; n++ {
			path = previewPath(opts, fmt.Sprintf("%s-%d", base, n))
		}
		used[strings.ToLower(path)] = true
		out[i].Preview = path
	}
	return out
}

func previewBase(src string) string {
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

func previewPath(opts Options, name string) string {
	format := opts.PreviewFormat
	if format == "" {
		format = "png"
	}
	return filepath.Join(opts.PreviewDir, name+"."+format)
}

func writePreview(job Job, doc *level.Document, opts Options) error {
	angles, err := level.Angles(doc)
	if err != nil {
		return err
	}
	if len(angles) == 0 {
		return nil
	}
	img, err := preview.Render(angles, opts.PreviewOptions)
	if err != nil {
		return err
	}
	path := job.Preview
	if path == "" {
		path = previewPath(opts, previewBase(job.Src))
	}
	return preview.Write(path, img)
}
