package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/linesmerrill/avenue-police-api/models"
)

const embedColor = 0x26c6da

// Notifier announces finished arrest reports to an outside channel
type Notifier interface {
	ArrestSubmitted(ctx context.Context, report models.ArrestReport, officerArrests int64) error
}

// Nop discards every notification
type Nop struct{}

// ArrestSubmitted implements Notifier
func (Nop) ArrestSubmitted(context.Context, models.ArrestReport, int64) error { return nil }

// Discord posts an embed to a Discord webhook
type Discord struct {
	WebhookURL string
	Client     *http.Client
}

// NewDiscord returns a Discord notifier, or Nop when url is empty
func NewDiscord(url string) Notifier {
	if url == "" {
		return Nop{}
	}
	return &Discord{
		WebhookURL: url,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// WebhookPayload is the body sent to the webhook
type WebhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// Embed is a single Discord rich embed
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Fields      []EmbedField `json:"fields"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField is a name/value block inside an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedImage points at an image shown in the embed
type EmbedImage struct {
	URL string `json:"url"`
}

// EmbedFooter is the small text under the embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// ArrestSubmitted implements Notifier
func (d *Discord) ArrestSubmitted(ctx context.Context, report models.ArrestReport, officerArrests int64) error {
	jsonData, err := json.Marshal(BuildArrestEmbed(report, officerArrests))
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// BuildArrestEmbed renders a report as a webhook payload
func BuildArrestEmbed(report models.ArrestReport, officerArrests int64) WebhookPayload {
	d := report.Details

	fields := []EmbedField{
		{
			Name:   "Accused",
			Value:  fmt.Sprintf("**Name:** %s\n**Passport:** %s", d.Accused.Name, d.Accused.Passport),
			Inline: true,
		},
		{
			Name:   "Arresting officer",
			Value:  fmt.Sprintf("**Name:** %s\n**Passport:** %s\n**Arrests made:** %d", d.Officer.Name, d.Officer.Passport, officerArrests),
			Inline: true,
		},
	}
	if d.HasAttorney() {
		fields = append(fields, EmbedField{
			Name:   "Attorney",
			Value:  fmt.Sprintf("**Name:** %s\n**Passport:** %s", d.Attorney.Name, d.Attorney.Passport),
			Inline: true,
		})
	}

	crimes := make([]string, 0, len(d.Violations))
	for _, v := range d.Violations {
		crimes = append(crimes, fmt.Sprintf("• **%s** - %s", v.Article, v.Description))
	}
	fields = append(fields,
		EmbedField{Name: "Charges", Value: strings.Join(crimes, "\n")},
		EmbedField{
			Name:   "Final penalties",
			Value:  fmt.Sprintf("**Fine:** $%d\n**Sentence:** %d months\n**Bail:** %s", d.Totals.FineFinal, d.Totals.SentenceFinal, bailText(d.Totals.BailTotal)),
			Inline: true,
		},
		EmbedField{
			Name:   "Reductions",
			Value:  reductionText(d.Reductions),
			Inline: true,
		},
	)
	if d.Notes != "" {
		fields = append(fields, EmbedField{Name: "Notes", Value: d.Notes})
	}

	embed := Embed{
		Title:       "ARREST REPORT",
		Description: "Official arrest report",
		Color:       embedColor,
		Fields:      fields,
		Footer:      &EmbedFooter{Text: fmt.Sprintf("%s • Arrest #%d", d.CreatedAt, d.ReportNumber)},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if d.PhotoURL != "" {
		embed.Image = &EmbedImage{URL: d.PhotoURL}
	}
	return WebhookPayload{Embeds: []Embed{embed}}
}

func bailText(bail int64) string {
	if bail > 0 {
		return fmt.Sprintf("$%d", bail)
	}
	return "No bail"
}

func reductionText(r models.Reductions) string {
	attorney := "No attorney"
	if r.AttorneyApplied {
		attorney = "Attorney (-30%)"
	}
	coop := "No cooperation"
	if r.CooperationApplied {
		coop = "Cooperation (-20%)"
	}
	return attorney + "\n" + coop
}
