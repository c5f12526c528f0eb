package reports

import (
	"fmt"

	"github.com/linesmerrill/avenue-police-api/models"
)

func report(n int64, officer, accused string, createdAt string, fine int64, violations ...models.StatuteViolation) models.ArrestReport {
	return models.ArrestReport{Details: models.ArrestReportDetails{
		ReportNumber: n,
		Accused:      models.Accused{Name: accused, Passport: fmt.Sprintf("9%d", n)},
		Officer:      models.Officer{Name: "Officer " + officer, Passport: officer},
		Violations:   violations,
		Totals:       models.Totals{FineBase: fine, FineFinal: fine, SentenceFinal: 2},
		CreatedAt:    createdAt,
	}}
}

func violation(article string, fine int64) models.StatuteViolation {
	return models.StatuteViolation{ID: article, Article: article, Fine: fine}
}
