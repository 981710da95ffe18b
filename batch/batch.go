// Package batch drives the resolution engine over the missing-translation
// records of a list of files and persists the translation memory at the end
// of the run.
package batch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/minios-linux/captrans/caption"
	"github.com/minios-linux/captrans/config"
	"github.com/minios-linux/captrans/memory"
	"github.com/minios-linux/captrans/resolve"
)

// Exporter produces the language line-sets of a file.
type Exporter interface {
	// Export returns every line of file carrying the marker of languageID.
	Export(file string, languageID int) ([]string, error)
	// ExportMissing returns the lines of languageID that still need a value.
	ExportMissing(file string, languageID int) ([]string, error)
}

// Importer writes a patched work-language line-set back into file.
type Importer interface {
	Import(file string, lines []string, languageID int) error
}

// Summary counts what a run did.
type Summary struct {
	Files    int
	Imported int
	Records  int
	Skipped  int
	BySource map[resolve.Source]int
	// Aborted is set when the translator stopped the run.
	Aborted     bool
	MemorySaved bool
}

// Driver runs one batch. All fields except Logger and the hooks are
// required.
type Driver struct {
	Exporter   Exporter
	Importer   Importer
	Engine     *resolve.Engine
	Memory     *memory.Memory
	MemoryPath string
	Setup      config.LanguageSetup
	// Strict makes ambiguous patterns fail instead of using the first match.
	Strict bool
	Logger *zap.Logger

	// OnFile is called before a file is processed.
	OnFile func(file string, records int)
	// OnResult is called after each resolved record.
	OnResult func(file string, res resolve.Result)
}

// Run processes files in order. An abort, or cancellation of ctx, ends the
// run without error and without importing the file in progress. Any other
// failure stops the run and is returned with the file name. The memory is
// saved before Run returns in every case.
func (d *Driver) Run(ctx context.Context, files []string) (sum Summary, err error) {
	sum.BySource = make(map[resolve.Source]int)
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	defer func() {
		if d.MemoryPath == "" {
			return
		}
		saved, saveErr := d.Memory.Save(d.MemoryPath)
		sum.MemorySaved = saved
		if saveErr != nil {
			err = errors.Join(err, fmt.Errorf("saving memory: %w", saveErr))
			return
		}
		if saved {
			logger.Info("memory saved", zap.String("path", d.MemoryPath), zap.Int("entries", d.Memory.Len()))
		}
	}()

	for _, file := range files {
		if ctx.Err() != nil {
			sum.Aborted = true
			logger.Info("run interrupted", zap.String("next", file))
			return sum, nil
		}
		err := d.processFile(ctx, logger, file, &sum)
		if errors.Is(err, resolve.ErrAborted) || errors.Is(err, context.Canceled) {
			sum.Aborted = true
			logger.Info("run aborted", zap.String("file", file))
			return sum, nil
		}
		if err != nil {
			logger.Error("file failed", zap.String("file", file), zap.Error(err))
			return sum, fmt.Errorf("%s: %w", file, err)
		}
	}
	return sum, nil
}

func (d *Driver) processFile(ctx context.Context, logger *zap.Logger, file string, sum *Summary) error {
	baseID, workID := d.Setup.BaseLanguageID, d.Setup.WorkLanguageID

	missing, err := d.Exporter.ExportMissing(file, workID)
	if err != nil {
		return fmt.Errorf("exporting missing captions: %w", err)
	}
	if d.OnFile != nil {
		d.OnFile(file, len(missing))
	}
	sum.Files++
	if len(missing) == 0 {
		logger.Debug("nothing to translate", zap.String("file", file))
		return nil
	}

	baseLines, err := d.Exporter.Export(file, baseID)
	if err != nil {
		return fmt.Errorf("exporting language %d: %w", baseID, err)
	}
	workLines, err := d.Exporter.Export(file, workID)
	if err != nil {
		return fmt.Errorf("exporting language %d: %w", workID, err)
	}
	base := caption.NewLineSet(baseLines)
	work := caption.NewLineSet(workLines)
	base.SetStrict(d.Strict)
	work.SetStrict(d.Strict)

	written := 0
	for _, record := range missing {
		res, ok, err := d.Engine.Apply(ctx, record, base, work)
		if err != nil {
			return err
		}
		if !ok {
			sum.Skipped++
			continue
		}
		written++
		sum.Records++
		sum.BySource[res.Source]++
		logger.Debug("record resolved",
			zap.String("file", file),
			zap.String("pattern", res.Pattern),
			zap.Stringer("source", res.Source),
		)
		if d.OnResult != nil {
			d.OnResult(file, res)
		}
	}

	if written == 0 {
		return nil
	}
	if err := d.Importer.Import(file, work.Lines(), workID); err != nil {
		return fmt.Errorf("importing language %d: %w", workID, err)
	}
	sum.Imported++
	logger.Info("file imported", zap.String("file", file), zap.Int("records", written))
	return nil
}
