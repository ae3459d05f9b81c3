// Package review runs the compliance check over every file of a source,
// one remote call per file, and annotates each file with the reply.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/K0NGR3SS/codesentry/internal/annotate"
	"github.com/K0NGR3SS/codesentry/internal/compliance"
	"github.com/K0NGR3SS/codesentry/internal/models"
	"github.com/K0NGR3SS/codesentry/internal/source"
)

var (
	ErrNotUTF8  = errors.New("file is not valid UTF-8 text")
	ErrTooLarge = errors.New("file exceeds max_file_bytes")
	// ErrReview matches reports whose remote review call failed.
	ErrReview   = errors.New("remote review failed")
)

// reviewError wraps a reviewer failure. It renders with the
// "Error analyzing code: " prefix and matches ErrReview.
type reviewError struct {
	err error
}

func (e *reviewError) Error() string { return compliance.Failure(e.err) }
func (e *reviewError) Unwrap() error { return e.err }
func (e *reviewError) Is(target error) bool { return target == ErrReview }

type Runner struct {
	Source       source.Source
	Reviewer     compliance.Reviewer
	Logger       *pterm.Logger
	MaxFileBytes int64
	// OnFile is called after each file with the number of files done so far.
	OnFile func(done, total int, report models.FileReport)
}

// Run reviews every file in order. Per-file failures end up in the report
// and the run continues; only failing to enumerate the source is returned.
func (r *Runner) Run(ctx context.Context) (string, []models.FileReport, error) {
	runID := uuid.NewString()
	log := r.logger()

	entries, err := r.Source.Entries(ctx)
	if err != nil {
		return runID, nil, fmt.Errorf("failed to list %s: %w", r.Source.Root(), err)
	}

	files := source.Files(entries)
	if len(files) == 0 {
		log.Info("no files to review", log.Args("run_id", runID, "root", r.Source.Root()))
		return runID, []models.FileReport{}, nil
	}

	log.Info("compliance run started", log.Args("run_id", runID, "root", r.Source.Root(), "files", len(files)))

	reports := make([]models.FileReport, 0, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return runID, reports, err
		}

		report := r.reviewFile(ctx, path)
		if report.Err != nil {
			log.Warn("file skipped", log.Args("run_id", runID, "path", path, "error", report.Err.Error()))
		} else {
			log.Debug("file reviewed", log.Args("run_id", runID, "path", path, "annotations", len(report.Descriptors)))
		}

		reports = append(reports, report)
		if r.OnFile != nil {
			r.OnFile(i+1, len(files), report)
		}
	}

	s := Summarize(reports)
	log.Info("compliance run finished", log.Args("run_id", runID, "reviewed", s.Reviewed, "failed", s.Failed, "annotated_lines", s.AnnotatedLines))
	return runID, reports, nil
}

func (r *Runner) reviewFile(ctx context.Context, path string) models.FileReport {
	report := models.FileReport{Path: path}

	data, err := r.Source.ReadFile(ctx, path)
	if err != nil {
		report.Err = fmt.Errorf("error reading file %s: %w", path, err)
		return report
	}
	if r.MaxFileBytes > 0 && int64(len(data)) > r.MaxFileBytes {
		report.Err = fmt.Errorf("%s (%d bytes): %w", path, len(data), ErrTooLarge)
		return report
	}
	if !utf8.Valid(data) {
		report.Err = fmt.Errorf("error reading file %s: %w", path, ErrNotUTF8)
		return report
	}
	content := string(data)

	response, err := r.Reviewer.Review(ctx, path, content)
	if err != nil {
		report.Err = &reviewError{err: err}
		return report
	}

	lines := annotate.SplitResponse(response)
	report.Response = response
	report.Annotated = annotate.Annotate(content, lines)
	report.Descriptors = annotate.Descriptors(lines)
	return report
}

func (r *Runner) logger() *pterm.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return &pterm.DefaultLogger
}

// Summary counts the outcome of a run.
type Summary struct {
	Files          int `json:"files"`
	Reviewed       int `json:"reviewed"`
	Failed         int `json:"failed"`
	AnnotatedLines int `json:"annotated_lines"`
}

func Summarize(reports []models.FileReport) Summary {
	s := Summary{Files: len(reports)}
	for _, rep := range reports {
		if !rep.OK() {
			s.Failed++
			continue
		}
		s.Reviewed++
		s.AnnotatedLines += countInRange(rep)
	}
	return s
}

// countInRange counts descriptors that actually landed on a source line.
func countInRange(rep models.FileReport) int {
	lines := strings.Count(rep.Annotated, "\n") + 1
	n := 0
	for _, d := range rep.Descriptors {
		if d.Line >= 1 && d.Line <= lines {
			n++
		}
	}
	return n
}
