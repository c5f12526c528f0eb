// Package backup reads and writes full JSON snapshots of the roster, the
// statute table and the arrest reports.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/models"
)

// Backup is the export file format
type Backup struct {
	Officers      []models.User             `json:"officers"`
	Statutes      []models.StatuteViolation `json:"statutes"`
	ArrestReports []models.ArrestReport     `json:"arrestReports"`
	ExportedAt    time.Time                 `json:"exportedAt"`
}

// Stores are the collections a backup covers
type Stores struct {
	Officers databases.UserDatabase
	Statutes databases.StatuteDatabase
	Reports  databases.ArrestReportDatabase
	Counters databases.CounterDatabase
}

// Result counts what an import did
type Result struct {
	OfficersCreated int   `json:"officersCreated"`
	OfficersSkipped int   `json:"officersSkipped"`
	StatutesSaved   int   `json:"statutesSaved"`
	ReportsCreated  int   `json:"reportsCreated"`
	ReportsSkipped  int   `json:"reportsSkipped"`
	LastReportNum   int64 `json:"lastReportNumber"`
}

// Export reads everything into a Backup. Password hashes are kept so the
// roster can be restored as is.
func Export(ctx context.Context, s Stores) (*Backup, error) {
	officers, err := s.Officers.ListOfficers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list officers: %w", err)
	}
	statutes, err := s.Statutes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list statutes: %w", err)
	}
	reports, err := s.Reports.ListArrestReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrest reports: %w", err)
	}
	return &Backup{
		Officers:      officers,
		Statutes:      statutes,
		ArrestReports: reports,
		ExportedAt:    time.Now().UTC(),
	}, nil
}

// Decode reads a backup written by Export or by the legacy web app, whose
// files carry usuarios, artigos and prisoes keys.
func Decode(r io.Reader) (*Backup, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if _, ok := keys["prisoes"]; ok {
		return decodeLegacy(raw)
	}
	if _, ok := keys["usuarios"]; ok {
		return decodeLegacy(raw)
	}

	var b Backup
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	return &b, nil
}

// Total is the number of records Import will walk through
func (b *Backup) Total() int {
	return len(b.Officers) + len(b.Statutes) + len(b.ArrestReports)
}

// Import writes a backup into the stores. Officers whose passport is already
// registered and reports whose number is taken are skipped. Report numbers
// are preserved and the report counter is advanced past the highest one.
// step is called once per record.
func Import(ctx context.Context, s Stores, b *Backup, step func()) (Result, error) {
	if step == nil {
		step = func() {}
	}
	var res Result

	for _, u := range b.Officers {
		created, err := importOfficer(ctx, s.Officers, u)
		if err != nil {
			return res, err
		}
		if created {
			res.OfficersCreated++
		} else {
			res.OfficersSkipped++
		}
		step()
	}

	for _, st := range b.Statutes {
		if err := importStatute(ctx, s.Statutes, st); err != nil {
			return res, err
		}
		res.StatutesSaved++
		step()
	}

	for _, r := range b.ArrestReports {
		if r.ID.IsZero() {
			r.ID = primitive.NewObjectID()
		}
		if r.Details.ReportNumber <= 0 {
			seq, err := s.Counters.Next(ctx, databases.ArrestReportSequence)
			if err != nil {
				return res, fmt.Errorf("failed to assign report number: %w", err)
			}
			r.Details.ReportNumber = seq
		}
		_, err := s.Reports.InsertOne(ctx, r)
		switch {
		case mongo.IsDuplicateKeyError(err):
			res.ReportsSkipped++
		case err != nil:
			return res, fmt.Errorf("failed to insert arrest report %d: %w", r.Details.ReportNumber, err)
		default:
			res.ReportsCreated++
		}
		if r.Details.ReportNumber > res.LastReportNum {
			res.LastReportNum = r.Details.ReportNumber
		}
		step()
	}

	if res.LastReportNum > 0 {
		if err := s.Counters.AdvanceTo(ctx, databases.ArrestReportSequence, res.LastReportNum); err != nil {
			return res, fmt.Errorf("failed to advance report counter: %w", err)
		}
	}
	return res, nil
}

func importOfficer(ctx context.Context, db databases.UserDatabase, u models.User) (bool, error) {
	_, err := db.FindByPassport(ctx, u.Details.Passport)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, databases.ErrNoDocuments) {
		return false, fmt.Errorf("failed to look up officer %s: %w", u.Details.Passport, err)
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if !isBcryptHash(u.Details.Password) {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Details.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		u.Details.Password = string(hash)
	}
	if _, err := db.InsertOne(ctx, u); err != nil {
		return false, fmt.Errorf("failed to insert officer %s: %w", u.Details.Passport, err)
	}
	return true, nil
}

func importStatute(ctx context.Context, db databases.StatuteDatabase, st models.StatuteViolation) error {
	if st.ID != "" {
		err := db.Update(ctx, st.ID, st)
		if err == nil {
			return nil
		}
		if !errors.Is(err, databases.ErrNoDocuments) {
			return fmt.Errorf("failed to update statute %s: %w", st.ID, err)
		}
	}
	if _, err := db.Add(ctx, st); err != nil {
		return fmt.Errorf("failed to add statute %s: %w", st.ID, err)
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
