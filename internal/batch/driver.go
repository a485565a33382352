// Package batch rewrites every markup file under a directory tree.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/a11yfix/internal/rewrite"
	"github.com/google/uuid"
)

// Summary is the outcome of one run.
type Summary struct {
	RunID   string         `json:"run_id"`
	Root    string         `json:"root"`
	DryRun  bool           `json:"dry_run"`
	Scanned int            `json:"scanned"`
	Changed int            `json:"changed"`
	Files   []string       `json:"files"` // changed files, in processing order
	Edits   map[string]int `json:"edits"`
}

// Driver processes files one at a time: read, rewrite, write back if changed.
type Driver struct {
	rewriter *rewrite.Rewriter
	opts     Options
	log      *slog.Logger

	// Replaced in tests.
	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte, perm os.FileMode) error
}

func NewDriver(rw *rewrite.Rewriter, opts Options, log *slog.Logger) *Driver {
	return &Driver{
		rewriter:  rw,
		opts:      opts,
		log:       log,
		readFile:  os.ReadFile,
		writeFile: os.WriteFile,
	}
}

// Run rewrites every matching file under root. The first read or write
// error stops the run; the summary covers the files handled before it.
func (d *Driver) Run(ctx context.Context, root string) (Summary, error) {
	sum := Summary{
		RunID:  uuid.NewString(),
		Root:   root,
		DryRun: d.opts.DryRun,
		Edits:  make(map[string]int),
	}
	log := d.log.With("run_id", sum.RunID)

	files, err := Discover(root, d.opts)
	if err != nil {
		return sum, err
	}
	log.Info("found html files", "root", root, "count", len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res, err := d.processFile(path)
		if err != nil {
			log.Error("processing failed", "path", path, "error", err)
			return sum, err
		}
		sum.Scanned++
		if !res.Changed {
			log.Debug("unchanged", "path", path)
			continue
		}

		sum.Changed++
		sum.Files = append(sum.Files, path)
		for rule, n := range res.Edits {
			sum.Edits[rule] += n
		}
		if d.opts.DryRun {
			log.Info("would patch", "path", path, "edits", res.Edits)
		} else {
			log.Info("patched", "path", path, "edits", res.Edits)
		}
	}

	log.Info("total files changed", "changed", sum.Changed, "scanned", sum.Scanned, "dry_run", sum.DryRun)
	return sum, nil
}

func (d *Driver) processFile(path string) (rewrite.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return rewrite.Result{}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := d.readFile(path)
	if err != nil {
		return rewrite.Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	res := d.rewriter.Rewrite(path, string(data))
	if !res.Changed || d.opts.DryRun {
		return res, nil
	}
	if err := d.writeFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	return res, nil
}
