package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/fintrend/marketpost/internal/types"
)

// RenderedMessage is a fully rendered email ready for delivery.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// HTMLEmailRenderer renders run reports as HTML emails with a plain text
// fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(report types.RunReport) (*RenderedMessage, error) {
	subject := fmt.Sprintf("Market post %s: %s", report.Outcome, report.Title)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, report); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(report),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients
// that don't support HTML.
func renderPlainText(report types.RunReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", report.Title))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("Outcome: %s\n", report.Outcome))
	if report.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason: %s\n", report.Reason))
	}
	sb.WriteString(fmt.Sprintf("Slug: %s\n", report.Slug))
	sb.WriteString(fmt.Sprintf("Finished: %s\n", report.FinishedAt.Format("02 Jan 2006 3:04 PM")))

	if report.PostURL != "" {
		sb.WriteString(fmt.Sprintf("Post: %s\n", report.PostURL))
	}

	return sb.String()
}
