package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/K0NGR3SS/codesentry/internal/models"
	"github.com/K0NGR3SS/codesentry/internal/review"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// WriteFindings writes findings as json or csv. Table output is PrintFindings.
func WriteFindings(w io.Writer, format string, findings []models.Finding) error {
	switch format {
	case FormatJSON:
		if findings == nil {
			findings = []models.Finding{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"risk", "rule_id", "vulnerability", "line", "snippet", "recommendation"})
		for _, f := range findings {
			_ = cw.Write([]string{string(f.Risk), f.RuleID, f.Vulnerability, strconv.Itoa(f.Line), f.Snippet, f.Recommendation})
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported format for writer: %s", format)
	}
}

type reportJSON struct {
	models.FileReport
	Error string `json:"error,omitempty"`
}

type runJSON struct {
	RunID   string         `json:"run_id"`
	Root    string         `json:"root"`
	Summary review.Summary `json:"summary"`
	Files   []reportJSON   `json:"files"`
}

// WriteReports writes a compliance run as json or csv.
func WriteReports(w io.Writer, format, runID, root string, reports []models.FileReport) error {
	switch format {
	case FormatJSON:
		out := runJSON{RunID: runID, Root: root, Summary: review.Summarize(reports), Files: []reportJSON{}}
		for _, r := range reports {
			out.Files = append(out.Files, reportJSON{FileReport: r, Error: r.ErrorText()})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"run_id", "path", "status", "line", "message"})
		for _, r := range reports {
			if !r.OK() {
				_ = cw.Write([]string{runID, r.Path, "error", "", r.ErrorText()})
				continue
			}
			if len(r.Descriptors) == 0 {
				_ = cw.Write([]string{runID, r.Path, "ok", "", ""})
			}
			for _, d := range r.Descriptors {
				_ = cw.Write([]string{runID, r.Path, "ok", strconv.Itoa(d.Line), d.Message})
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported format for writer: %s", format)
	}
}
