// Package compliance asks a remote language model to review a source file
// against the OWASP Top 10 and return one "<line>: <issue>" entry per finding.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FailurePrefix starts the display text of a failed review.
const FailurePrefix = "Error analyzing code: "

// NoIssues is the reply the model is told to give for a clean file.
const NoIssues = "No issues found."

var (
	ErrEmptyResponse   = errors.New("model returned an empty response")
	ErrMissingAPIKey   = errors.New("no API key configured")
	ErrUnknownProvider = errors.New("unknown compliance provider")
)

// Reviewer reviews one file. The returned text is the raw model reply; a
// non-nil error means no usable reply was produced.
type Reviewer interface {
	Review(ctx context.Context, path, content string) (string, error)
}

const systemPrompt = `You are an application security reviewer. Check the submitted file against the OWASP Top 10 guidelines.
Report every problem on its own line using exactly this format:
<line number>: <problem>. Fix: <suggested fix>
The line number is the 1-based number shown before each source line. Do not add headings, numbering, code fences or any other text.
If the file has no problems, reply with exactly: ` + NoIssues

// BuildPrompt renders the user message for a file: the path followed by
// every line prefixed with its 1-based number.
func BuildPrompt(path, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n\n", path)
	lines := strings.Split(content, "\n")
	width := len(fmt.Sprint(len(lines)))
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d| %s\n", width, i+1, line)
	}
	return b.String()
}

// Failure renders a review error the way it is shown to the user.
func Failure(err error) string {
	return FailurePrefix + err.Error()
}

func cleanReply(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
