package templates

import (
	"fmt"
	"html"
	"strings"

	"github.com/linesmerrill/avenue-police-api/models"
)

// MonthlySummarySubject is the subject line of the monthly summary email
func MonthlySummarySubject(month string) string {
	return "Monthly arrest summary - " + month
}

// RenderMonthlySummaryEmail renders the monthly summary sent to command staff
func RenderMonthlySummaryEmail(summary models.MonthlySummary) string {
	var b strings.Builder
	s := summary.Stats

	b.WriteString("<table>")
	row := func(label string, value interface{}) {
		fmt.Fprintf(&b, "<tr><th>%s</th><td>%v</td></tr>", label, value)
	}
	row("Arrests", s.Count)
	row("Fines collected", fmt.Sprintf("$%d", s.TotalFineCollected))
	row("Average fine", fmt.Sprintf("$%d", s.AverageFine))
	row("Sentence months", s.TotalSentenceMonths)
	row("Average sentence", fmt.Sprintf("%d months", s.AverageSentence))
	row("Cases with attorney", s.AttorneyCaseCount)
	row("Cases with cooperation", s.CooperationCaseCount)
	b.WriteString("</table>")

	if len(summary.TopStatutes) > 0 {
		b.WriteString("<p><strong>Most charged statutes</strong></p><table><tr><th>Statute</th><th>Count</th><th>Fines</th></tr>")
		for _, st := range summary.TopStatutes {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>$%d</td></tr>", html.EscapeString(st.Article), st.Count, st.TotalFine)
		}
		b.WriteString("</table>")
	} else {
		b.WriteString("<p>No arrests were filed this month.</p>")
	}

	return renderLayout(MonthlySummarySubject(summary.ID), b.String())
}

// RenderMonthlySummaryText is the plain text alternative of the summary email
func RenderMonthlySummaryText(summary models.MonthlySummary) string {
	s := summary.Stats
	lines := []string{
		MonthlySummarySubject(summary.ID),
		fmt.Sprintf("Arrests: %d", s.Count),
		fmt.Sprintf("Fines collected: $%d", s.TotalFineCollected),
		fmt.Sprintf("Average fine: $%d", s.AverageFine),
		fmt.Sprintf("Sentence months: %d", s.TotalSentenceMonths),
		fmt.Sprintf("Average sentence: %d months", s.AverageSentence),
	}
	for i, st := range summary.TopStatutes {
		lines = append(lines, fmt.Sprintf("%d. %s (%d)", i+1, st.Article, st.Count))
	}
	return strings.Join(lines, "\n")
}
