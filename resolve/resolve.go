// Package resolve decides the work-language value of one caption.
//
// The fallback chain is: translation memory, the value already present in
// the work-language export (suggested), machine translation, manual entry.
// A memory hit is final and never prompts. Every other outcome is confirmed
// by the translator and recorded in the memory before it is written into the
// work-language line-set.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/minios-linux/captrans/caption"
	"github.com/minios-linux/captrans/confirm"
	"github.com/minios-linux/captrans/i18n"
	"github.com/minios-linux/captrans/memory"
	"github.com/minios-linux/captrans/mt"
)

var (
	// ErrAborted is returned when the translator aborts the run.
	ErrAborted = errors.New("aborted by user")
	// ErrEmptyBase is returned by Resolve for an empty base string.
	ErrEmptyBase = errors.New("empty base string")
)

// Source tells where a resolved value came from.
type Source int

const (
	SourceMemory Source = iota
	SourceSuggested
	SourceMT
	SourceManual
	SourceKept
)

func (s Source) String() string {
	switch s {
	case SourceMemory:
		return "memory"
	case SourceSuggested:
		return "suggested"
	case SourceMT:
		return "mt"
	case SourceManual:
		return "manual"
	case SourceKept:
		return "kept"
	default:
		return "unknown"
	}
}

// Sources lists all sources in chain order.
var Sources = []Source{SourceMemory, SourceSuggested, SourceMT, SourceManual, SourceKept}

// Result is the outcome of one resolution.
type Result struct {
	Pattern string
	Base    string
	Work    string
	Source  Source
}

// Engine resolves captions against one memory with one prompter.
type Engine struct {
	mem        *memory.Memory
	prompter   confirm.Prompter
	translator mt.Translator
	targetISO  string
	marker     string
	logger     *zap.Logger
	notify     func(format string, args ...any)
}

// Option configures an Engine.
type Option func(*Engine)

// WithTranslator enables machine translation.
func WithTranslator(t mt.Translator) Option {
	return func(e *Engine) { e.translator = t }
}

// WithTargetISO sets the two-letter code sent to the translator.
func WithTargetISO(code string) Option {
	return func(e *Engine) { e.targetISO = code }
}

// WithWorkLanguage sets the language id whose marker Apply extracts
// patterns with.
func WithWorkLanguage(id int) Option {
	return func(e *Engine) { e.marker = caption.Marker(id) }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithNotifier receives notices meant for the translator, such as an
// unavailable translation service.
func WithNotifier(fn func(format string, args ...any)) Option {
	return func(e *Engine) { e.notify = fn }
}

// New creates an Engine.
func New(mem *memory.Memory, p confirm.Prompter, opts ...Option) *Engine {
	e := &Engine{
		mem:      mem,
		prompter: p,
		logger:   zap.NewNop(),
		notify:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve returns the work-language value of base. suggested is the value
// the work-language export already carries, or "".
func (e *Engine) Resolve(ctx context.Context, base, suggested string) (Result, error) {
	res := Result{Base: base}
	if base == "" {
		return res, ErrEmptyBase
	}

	if v, ok := e.mem.Lookup(base); ok {
		res.Work = v
		res.Source = SourceMemory
		e.logger.Debug("memory hit", zap.String("base", base), zap.String("work", v))
		return res, nil
	}

	var (
		d   confirm.Decision
		err error
	)
	switch {
	case strings.TrimSpace(suggested) != "":
		res.Source = SourceSuggested
		d, err = confirm.Confirm(e.prompter, base, suggested)
	default:
		candidate, mtErr := e.machineTranslate(ctx, base)
		if mtErr != nil {
			return res, mtErr
		}
		if candidate != "" {
			res.Source = SourceMT
			d, err = confirm.Confirm(e.prompter, base, candidate)
		} else {
			res.Source = SourceManual
			d, err = confirm.ManualEntry(e.prompter, base)
		}
	}
	if err != nil {
		return res, fmt.Errorf("prompting for %q: %w", base, err)
	}

	switch d.Kind {
	case confirm.Aborted:
		e.logger.Info("aborted", zap.String("base", base))
		return res, ErrAborted
	case confirm.Kept:
		res.Source = SourceKept
	}
	if d.Edited {
		res.Source = SourceManual
	}
	res.Work = d.Value

	e.mem.Insert(base, res.Work)
	e.logger.Debug("resolved",
		zap.String("base", base),
		zap.String("work", res.Work),
		zap.Stringer("source", res.Source),
		zap.Bool("capitalized", d.Capitalized),
	)
	return res, nil
}

// machineTranslate returns "" when the service is disabled, fails, was
// interrupted or has nothing to say. The caller then falls back to manual
// entry, where the translator can still abort.
func (e *Engine) machineTranslate(ctx context.Context, base string) (string, error) {
	if e.translator == nil {
		return "", nil
	}
	if ctx.Err() != nil {
		e.logger.Debug("machine translation skipped after interrupt", zap.String("base", base))
		return "", nil
	}
	reply, err := e.translator.Translate(ctx, base, e.targetISO)
	if err != nil {
		if ctx.Err() != nil {
			e.logger.Info("machine translation interrupted", zap.String("base", base))
			e.notify(i18n.T("Machine translation interrupted, please enter the translation or press Ctrl-D to stop."))
			return "", nil
		}
		e.logger.Warn("machine translation failed", zap.String("base", base), zap.Error(err))
		e.notify(i18n.T("Machine translation unavailable (%v), please enter the translation."), err)
		return "", nil
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		e.logger.Warn("machine translation returned nothing", zap.String("base", base))
		e.notify(i18n.T("Machine translation returned no text for %q."), base)
		return "", nil
	}
	if mt.Mismatch(reply, e.targetISO) {
		e.logger.Warn("machine translation language mismatch",
			zap.String("reply", reply), zap.String("target", e.targetISO))
		e.notify(i18n.T("Machine translation %q does not look like language %q."), reply, e.targetISO)
	}
	return reply, nil
}

// Apply resolves one missing-translation record. The pattern is taken from
// record, the base value from base and the suggested value from work; the
// resolved value is written into work. Records with an empty base value are
// skipped and reported with false.
func (e *Engine) Apply(ctx context.Context, record string, base, work *caption.LineSet) (Result, bool, error) {
	pattern, err := caption.ExtractPattern(record, e.marker)
	if err != nil {
		return Result{}, false, err
	}
	res := Result{Pattern: pattern}

	baseValue, err := base.ReadValue(pattern)
	if err != nil {
		return res, false, err
	}
	if strings.TrimSpace(baseValue) == "" {
		e.logger.Debug("empty base skipped", zap.String("pattern", pattern))
		return res, false, nil
	}

	suggested, err := work.ReadValue(pattern)
	if err != nil {
		return res, false, err
	}

	res, err = e.Resolve(ctx, baseValue, suggested)
	res.Pattern = pattern
	if err != nil {
		return res, false, err
	}
	if err := work.WriteValue(pattern, res.Work); err != nil {
		return res, false, err
	}
	return res, true, nil
}
