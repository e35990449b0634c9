package fixer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/pipeline"
)

// Transformer turns the text of a G-code file into its sped-up version.
type Transformer interface {
	Run(text string) (*pipeline.Result, error)
}

// Fixer is the file boundary around a Transformer.
type Fixer struct {
	DryRun bool

	transformer Transformer
	logger      *zap.Logger
}

func New(transformer Transformer, logger *zap.Logger, dryRun bool) *Fixer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fixer{
		DryRun:      dryRun,
		transformer: transformer,
		logger:      logger,
	}
}

// Fix rewrites filename in place.
func (f *Fixer) Fix(filename string) (*pipeline.Result, error) {
	return f.FixTo(filename, filename)
}

// FixTo reads src and writes the transformed text to dst. Nothing is written
// when the transformation fails or in dry-run mode.
func (f *Fixer) FixTo(src, dst string) (*pipeline.Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", src, ErrIsDir)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	result, err := f.transformer.Run(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	if f.DryRun {
		f.logger.Info("dry run, file not written",
			zap.String("file", src),
			zap.Int("changes", len(result.Changes)),
		)
		return result, nil
	}

	if err := os.WriteFile(dst, []byte(result.Text), perm(info.Mode())); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	f.logger.Info("fixed file",
		zap.String("file", dst),
		zap.Int("changes", len(result.Changes)),
		zap.Strings("skipped", result.Skipped),
	)
	return result, nil
}

var ErrIsDir = errors.New("is a directory")

func perm(mode fs.FileMode) fs.FileMode {
	if p := mode.Perm(); p != 0 {
		return p
	}
	return 0o644
}
