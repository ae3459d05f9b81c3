package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/K0NGR3SS/codesentry/internal/models"
)

const maxListed = 5

type SlackNotifier struct {
	WebhookURL string
	Channel    string
	HTTPClient *http.Client
}

type slackMessage struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text,omitempty"`
	Fields []slackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// RunSummary is what a compliance run reports to Slack.
type RunSummary struct {
	RunID          string
	Root           string
	Files          int
	Reviewed       int
	Failed         int
	AnnotatedLines int
	Failures       []string
}

func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendFindings posts a local scan result grouped by risk.
func (s *SlackNotifier) SendFindings(ctx context.Context, findings []models.Finding) error {
	if len(findings) == 0 {
		return s.sendMessage(ctx, slackMessage{
			Channel:   s.Channel,
			Username:  "codesentry",
			IconEmoji: ":white_check_mark:",
			Text:      "✅ *codesentry scan complete*\nNo vulnerabilities found.",
		})
	}

	critical := filterByRisk(findings, models.RiskCritical)
	high := filterByRisk(findings, models.RiskHigh)
	medium := filterByRisk(findings, models.RiskMedium)
	low := filterByRisk(findings, models.RiskLow)

	attachments := []slackAttachment{
		{
			Color: "danger",
			Title: fmt.Sprintf("Summary (%d total findings)", len(findings)),
			Fields: []slackField{
				{Title: "Critical", Value: fmt.Sprintf("%d", len(critical)), Short: true},
				{Title: "High", Value: fmt.Sprintf("%d", len(high)), Short: true},
				{Title: "Medium", Value: fmt.Sprintf("%d", len(medium)), Short: true},
				{Title: "Low", Value: fmt.Sprintf("%d", len(low)), Short: true},
			},
			Footer: "codesentry",
		},
	}
	if len(critical) > 0 {
		attachments = append(attachments, slackAttachment{Color: "danger", Title: "🔴 Critical Findings", Text: listFindings(critical)})
	}
	if len(high) > 0 {
		attachments = append(attachments, slackAttachment{Color: "warning", Title: "🟠 High Findings", Text: listFindings(high)})
	}

	return s.sendMessage(ctx, slackMessage{
		Channel:     s.Channel,
		Username:    "codesentry",
		IconEmoji:   ":shield:",
		Text:        fmt.Sprintf("🚨 *codesentry scan complete*\nFound *%d* potential vulnerabilities", len(findings)),
		Attachments: attachments,
	})
}

// SendRun posts the outcome of a compliance run.
func (s *SlackNotifier) SendRun(ctx context.Context, sum RunSummary) error {
	color := "good"
	if sum.AnnotatedLines > 0 {
		color = "warning"
	}
	if sum.Failed > 0 && sum.Reviewed == 0 {
		color = "danger"
	}

	attachments := []slackAttachment{{
		Color: color,
		Title: sum.Root,
		Fields: []slackField{
			{Title: "Files", Value: fmt.Sprintf("%d", sum.Files), Short: true},
			{Title: "Reviewed", Value: fmt.Sprintf("%d", sum.Reviewed), Short: true},
			{Title: "Failed", Value: fmt.Sprintf("%d", sum.Failed), Short: true},
			{Title: "Annotated lines", Value: fmt.Sprintf("%d", sum.AnnotatedLines), Short: true},
		},
		Footer: "run " + sum.RunID,
	}}

	if len(sum.Failures) > 0 {
		text := ""
		for i, f := range sum.Failures {
			if i >= maxListed {
				text += fmt.Sprintf("\n_...and %d more_", len(sum.Failures)-maxListed)
				break
			}
			text += fmt.Sprintf("• %s\n", f)
		}
		attachments = append(attachments, slackAttachment{Color: "danger", Title: "Files not reviewed", Text: text})
	}

	return s.sendMessage(ctx, slackMessage{
		Channel:     s.Channel,
		Username:    "codesentry",
		IconEmoji:   ":shield:",
		Text:        "🔍 *codesentry OWASP compliance check complete*",
		Attachments: attachments,
	})
}

func (s *SlackNotifier) sendMessage(ctx context.Context, msg slackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned non-200 status: %d", resp.StatusCode)
	}

	return nil
}

func listFindings(findings []models.Finding) string {
	text := ""
	for i, f := range findings {
		if i >= maxListed {
			text += fmt.Sprintf("\n_...and %d more_", len(findings)-maxListed)
			break
		}
		text += fmt.Sprintf("• *%s* at line %d - `%s`\n", f.Vulnerability, f.Line, f.Snippet)
	}
	return text
}

func filterByRisk(findings []models.Finding, risk models.RiskLevel) []models.Finding {
	var filtered []models.Finding
	for _, f := range findings {
		if f.Risk == risk {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
