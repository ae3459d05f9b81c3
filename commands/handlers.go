package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/K0NGR3SS/codesentry/internal/models"
	"github.com/K0NGR3SS/codesentry/internal/notifications"
	"github.com/K0NGR3SS/codesentry/internal/review"
	"github.com/K0NGR3SS/codesentry/internal/session"
	"github.com/K0NGR3SS/codesentry/internal/source"
	"github.com/K0NGR3SS/codesentry/internal/ui"
)

// showTree is the "Show Folder Tree" action.
func showTree(ctx context.Context, env *environment, s *session.Session, plain bool) error {
	folder, err := s.Folder()
	if err != nil {
		return err
	}
	src, err := env.openSource(ctx, folder)
	if err != nil {
		return err
	}

	var spinner *pterm.SpinnerPrinter
	if !plain && env.table() {
		spinner = ui.StartSpinner(fmt.Sprintf("Listing %s...", src.Root()))
	}
	entries, err := src.Entries(ctx)
	ui.StopSpinner(spinner, err, fmt.Sprintf("Listed %d entries", len(entries)))
	if err != nil {
		return fmt.Errorf("error accessing folder: %w", err)
	}

	outline := source.Outline(entries)
	if plain {
		for _, line := range ui.TreeLines(outline) {
			fmt.Fprintln(env.out, line)
		}
		return nil
	}
	ui.PrintTree(src.Root(), outline)
	return nil
}

// checkCompliance is the "Check Code for OWASP Compliance" action.
func checkCompliance(ctx context.Context, env *environment, s *session.Session, notify bool) error {
	folder, err := s.Folder()
	if err != nil {
		return err
	}
	src, err := env.openSource(ctx, folder)
	if err != nil {
		return err
	}
	reviewer, err := env.newReviewer(ctx)
	if err != nil {
		return err
	}

	runner := &review.Runner{
		Source:       src,
		Reviewer:     reviewer,
		Logger:       env.log,
		MaxFileBytes: env.cfg.MaxFileBytes,
	}

	var bar *pterm.ProgressbarPrinter
	if env.table() {
		pterm.Info.Println("Checking code files for OWASP compliance...")
		runner.OnFile = func(done, total int, report models.FileReport) {
			if bar == nil {
				bar = ui.StartProgress(total, "Checking files")
			}
			pterm.Printfln("Checked %s", report.Path)
			ui.PrintReport(report)
			bar.Increment()
		}
	}

	runID, reports, err := runner.Run(ctx)
	if bar != nil {
		_, _ = bar.Stop()
	}
	if err != nil {
		return err
	}

	if len(reports) == 0 && env.table() {
		pterm.Info.Printfln("No files to check in %s", src.Root())
		return nil
	}

	sum := review.Summarize(reports)
	if env.table() {
		pterm.Success.Printfln("Reviewed %d of %d files, %d annotated lines (run %s)", sum.Reviewed, sum.Files, sum.AnnotatedLines, runID)
		if sum.Failed > 0 {
			pterm.Warning.Printfln("%d files could not be reviewed", sum.Failed)
		}
	} else if err := ui.WriteReports(env.out, env.format, runID, src.Root(), reports); err != nil {
		return err
	}

	if notify {
		notifyRun(ctx, env, runID, src.Root(), sum, reports)
	}
	return nil
}

// analyzeCode is the "Analyze Code for Vulnerabilities" action.
func analyzeCode(ctx context.Context, env *environment, s *session.Session, notify bool) error {
	code, err := s.Code()
	if err != nil {
		return err
	}

	findings := env.newScanner().Scan(code)
	if min, ok := models.ParseRisk(env.cfg.MinRisk); ok {
		findings = models.FilterByRisk(findings, min)
	}
	env.log.Debug("scan finished", env.log.Args("findings", len(findings)))

	if env.table() {
		pterm.DefaultSection.Println("Vulnerability Analysis Results")
		ui.PrintFindings(findings)
	} else if err := ui.WriteFindings(env.out, env.format, findings); err != nil {
		return err
	}

	if notify {
		slack, ok := slackNotifier(env)
		if ok {
			if err := slack.SendFindings(ctx, findings); err != nil {
				env.log.Warn("slack notification failed", env.log.Args("error", err.Error()))
			}
		}
	}
	return nil
}

func notifyRun(ctx context.Context, env *environment, runID, root string, sum review.Summary, reports []models.FileReport) {
	slack, ok := slackNotifier(env)
	if !ok {
		return
	}
	var failures []string
	for _, r := range reports {
		if !r.OK() {
			failures = append(failures, r.ErrorText())
		}
	}
	err := slack.SendRun(ctx, notifications.RunSummary{
		RunID:          runID,
		Root:           root,
		Files:          sum.Files,
		Reviewed:       sum.Reviewed,
		Failed:         sum.Failed,
		AnnotatedLines: sum.AnnotatedLines,
		Failures:       failures,
	})
	if err != nil {
		env.log.Warn("slack notification failed", env.log.Args("error", err.Error()))
	}
}

func slackNotifier(env *environment) (*notifications.SlackNotifier, bool) {
	if env.cfg.Slack.WebhookURL == "" {
		env.log.Warn("notification requested but slack.webhook_url is not set")
		return nil, false
	}
	return notifications.NewSlackNotifier(env.cfg.Slack.WebhookURL, env.cfg.Slack.Channel), true
}
