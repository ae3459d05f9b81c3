package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/K0NGR3SS/codesentry/internal/models"
	"github.com/K0NGR3SS/codesentry/internal/review"
	"github.com/K0NGR3SS/codesentry/internal/source"
)

func riskLabel(r models.RiskLevel) string {
	switch r {
	case models.RiskCritical:
		return pterm.FgRed.Sprint("CRITICAL")
	case models.RiskHigh:
		return pterm.FgRed.Sprint("HIGH")
	case models.RiskMedium:
		return pterm.FgYellow.Sprint("MEDIUM")
	default:
		return pterm.FgBlue.Sprint("LOW")
	}
}

// PrintFindings shows the local scan result as a table followed by each
// finding's recommendation.
func PrintFindings(findings []models.Finding) {
	if len(findings) == 0 {
		pterm.Success.Println("No vulnerabilities found in the pasted code.")
		return
	}

	pterm.Warning.Printf("Found %d potential vulnerabilities:\n\n", len(findings))

	data := [][]string{
		{"Risk", "Vulnerability", "Line", "Snippet"},
	}
	for _, f := range findings {
		data = append(data, []string{
			riskLabel(f.Risk),
			pterm.FgCyan.Sprint(f.Vulnerability),
			fmt.Sprintf("%d", f.Line),
			f.Snippet,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()

	for _, f := range findings {
		pterm.DefaultSection.WithLevel(2).Printf("%s at line %d", f.Vulnerability, f.Line)
		pterm.Println(pterm.FgGray.Sprint(f.Snippet))
		pterm.Info.Println("Recommendation: " + f.Recommendation)
	}
}

// PrintReport renders one reviewed file: annotated code then the raw reply.
func PrintReport(r models.FileReport) {
	if !r.OK() {
		if errors.Is(r.Err, review.ErrReview) {
			pterm.Error.Println(r.ErrorText())
		} else {
			pterm.Warning.Println(r.ErrorText())
		}
		return
	}

	pterm.DefaultSection.Println(r.Path)
	pterm.DefaultBox.WithTitle("Annotated code").Println(NumberedCode(r.Annotated))
	pterm.DefaultSection.WithLevel(2).Println("Errors and Suggestions")
	pterm.Println(r.Response)
}

// NumberedCode prefixes every line with its 1-based number.
func NumberedCode(code string) string {
	lines := strings.Split(code, "\n")
	width := len(fmt.Sprint(len(lines)))
	for i, line := range lines {
		lines[i] = pterm.FgGray.Sprintf("%*d ", width, i+1) + line
	}
	return strings.Join(lines, "\n")
}

// PrintTree renders the folder tree with pterm.
func PrintTree(root string, outline []source.OutlineItem) {
	list := pterm.LeveledList{{Level: 0, Text: "📁 " + root}}
	for _, item := range outline {
		list = append(list, pterm.LeveledListItem{Level: item.Depth + 1, Text: itemLabel(item)})
	}
	_ = pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Render()
}

// TreeLines is the plain-text tree: "---" per level, a folder or file icon
// and the name, directories in bold markdown.
func TreeLines(outline []source.OutlineItem) []string {
	lines := make([]string, 0, len(outline))
	for _, item := range outline {
		indent := strings.Repeat("---", item.Depth)
		if item.IsDir {
			lines = append(lines, fmt.Sprintf("%s 📁 **%s**", indent, item.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%s 📄 %s", indent, item.Name))
		}
	}
	return lines
}

func itemLabel(item source.OutlineItem) string {
	if item.IsDir {
		return "📁 " + pterm.Bold.Sprint(item.Name)
	}
	return "📄 " + item.Name
}

// StartSpinner shows a spinner while a slow listing runs.
func StartSpinner(text string) *pterm.SpinnerPrinter {
	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(false).Start(text)
	if err != nil {
		return nil
	}
	return spinner
}

// StopSpinner ends the spinner with success or the error. A nil spinner is
// ignored.
func StopSpinner(spinner *pterm.SpinnerPrinter, err error, success string) {
	if spinner == nil {
		return
	}
	if err != nil {
		spinner.Fail(err.Error())
		return
	}
	spinner.Success(success)
}

func StartProgress(total int, title string) *pterm.ProgressbarPrinter {
	bar, _ := pterm.DefaultProgressbar.WithTotal(total).WithTitle(title).WithRemoveWhenDone(true).Start()
	return bar
}
