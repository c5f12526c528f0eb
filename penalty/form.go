package penalty

import (
	"context"
	"fmt"

	"github.com/linesmerrill/avenue-police-api/models"
)

// Store persists a finished report. Implementations assign the report number.
type Store interface {
	CreateArrestReport(ctx context.Context, draft models.ArrestReportDetails) (*models.ArrestReport, error)
}

// Form is an arrest report being filled in. A Form is not safe for concurrent use.
type Form struct {
	Session         models.Officer
	Officer         models.Officer
	Accused         models.Accused
	AttorneyPresent bool
	Attorney        models.Attorney
	Cooperation     bool
	Notes           string
	PhotoURL        string
	Selection       *Selection
}

// NewForm returns an empty form with the officer taken from the session.
func NewForm(session models.Officer) *Form {
	f := &Form{Session: session}
	f.Reset()
	return f
}

// Reset clears every field and the selection. The officer is restored from
// the session.
func (f *Form) Reset() {
	session := f.Session
	*f = Form{
		Session:   session,
		Officer:   session,
		Selection: NewSelection(),
	}
}

// Totals recomputes the totals for the current state of the form.
func (f *Form) Totals() (models.Totals, models.Reductions) {
	return ComputeTotals(f.Selection, f.AttorneyPresent, f.Attorney.Name, f.Attorney.Passport, f.Cooperation)
}

// Draft builds the report to persist, without id or report number.
func (f *Form) Draft() models.ArrestReportDetails {
	totals, reductions := f.Totals()
	d := models.ArrestReportDetails{
		Accused:    f.Accused,
		Officer:    f.Officer,
		Violations: f.Selection.Items(),
		Totals:     totals,
		Reductions: reductions,
		Notes:      f.Notes,
		PhotoURL:   f.PhotoURL,
	}
	if reductions.AttorneyApplied {
		a := f.Attorney
		d.Attorney = &a
	}
	return d
}

// Submit validates the form and hands the draft to the store. On failure the
// form is left untouched so it can be corrected and resubmitted; on success it
// is reset.
func (f *Form) Submit(ctx context.Context, store Store) (*models.ArrestReport, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	report, err := store.CreateArrestReport(ctx, f.Draft())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	f.Reset()
	return report, nil
}
