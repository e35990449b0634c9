package speedup

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/pipeline"
	"github.com/EvanDorsky/3dprint-gcode-speedup/scanner"
)

// FileFixer rewrites a single G-code file.
type FileFixer interface {
	Fix(path string) (*pipeline.Result, error)
}

// Report is the outcome of one file.
type Report struct {
	Path   string
	Result *pipeline.Result
	Err    error
}

// Processor runs a FileFixer over files and directories.
type Processor struct {
	Fixer  FileFixer
	Logger *zap.Logger
	// Workers bounds concurrent files inside a directory; runtime.NumCPU() when zero.
	Workers int
	// Progress receives the directory progress bar; nil disables it.
	Progress io.Writer
}

func NewProcessor(fixer FileFixer, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		Fixer:    fixer,
		Logger:   logger,
		Progress: os.Stderr,
	}
}

// ProcessPaths processes every path in order. Per-file failures are
// reported, not returned; the error is non-nil only when ctx ends.
func (p *Processor) ProcessPaths(ctx context.Context, paths []string) ([]Report, error) {
	var reports []Report
	for _, path := range paths {
		r, err := p.ProcessPath(ctx, path)
		reports = append(reports, r...)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

// ProcessPath fixes path, or every G-code file below it when it is a
// directory. Any file named explicitly is processed whatever its extension.
func (p *Processor) ProcessPath(ctx context.Context, path string) ([]Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return []Report{{Path: path, Err: fmt.Errorf("error accessing %s: %w", path, err)}}, nil
	}

	if !info.IsDir() {
		return []Report{p.fixOne(path)}, nil
	}

	files, err := scanner.New(path, scanner.Extensions...).Scan()
	if err != nil {
		return []Report{{Path: path, Err: fmt.Errorf("error walking %s: %w", path, err)}}, nil
	}
	return p.processFiles(ctx, path, files)
}

func (p *Processor) processFiles(ctx context.Context, dir string, files []scanner.FileInfo) ([]Report, error) {
	reports := make([]Report, len(files))

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)

	bar := p.newBar(dir, len(files))

	var wg sync.WaitGroup
	scheduled := 0
	var ctxErr error
	for i, file := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
		case sem <- struct{}{}:
		}
		if ctxErr != nil {
			break
		}

		scheduled++
		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			reports[i] = p.fixOne(fp)
			if bar != nil {
				_ = bar.Add(1)
			}
		}(i, file.Path)
	}
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}
	return reports[:scheduled], ctxErr
}

func (p *Processor) fixOne(path string) Report {
	result, err := p.Fixer.Fix(path)
	if err != nil {
		p.Logger.Error("error fixing file", zap.String("file", path), zap.Error(err))
	}
	return Report{Path: path, Result: result, Err: err}
}

func (p *Processor) newBar(dir string, total int) *progressbar.ProgressBar {
	if p.Progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.Progress),
		progressbar.OptionSetDescription(dir),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// Failed returns the reports that carry an error.
func Failed(reports []Report) []Report {
	var failed []Report
	for _, r := range reports {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
