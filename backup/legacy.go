package backup

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/roles"
)

type legacyBackup struct {
	Usuarios  []legacyUser              `json:"usuarios"`
	Artigos   []models.StatuteViolation `json:"artigos"`
	Prisoes   []legacyArrest            `json:"prisoes"`
	Timestamp string                    `json:"timestamp"`
}

type legacyUser struct {
	Nome       string `json:"nome"`
	Passaporte string `json:"passaporte"`
	Senha      string `json:"senha"`
	Tipo       string `json:"tipo"`
	FotoPerfil string `json:"fotoPerfil"`
	Idade      int    `json:"idade"`
	Patente    string `json:"patente"`
	CriadoEm   string `json:"criadoEm"`
	Ativo      bool   `json:"ativo"`
}

type legacyPerson struct {
	Nome       string `json:"nome"`
	Passaporte string `json:"passaporte"`
	Foto       string `json:"foto"`
}

type legacyViolation struct {
	ID          string  `json:"id"`
	Article     string  `json:"article"`
	Description string  `json:"description"`
	Fine        float64 `json:"fine"`
	Penalty     float64 `json:"penalty"`
	Bail        float64 `json:"bail"`
}

type legacyArrest struct {
	NumeroPrisao int64             `json:"numeroPrisao"`
	Acusado      legacyPerson      `json:"acusado"`
	Policial     legacyPerson      `json:"policial"`
	Advogado     *legacyPerson     `json:"advogado"`
	Crimes       []legacyViolation `json:"crimes"`
	Totais       struct {
		MultaOriginal  float64 `json:"multaOriginal"`
		PrisaoOriginal float64 `json:"prisaoOriginal"`
		MultaFinal     float64 `json:"multaFinal"`
		PrisaoFinal    float64 `json:"prisaoFinal"`
		Fianca         float64 `json:"fianca"`
	} `json:"totais"`
	Reducoes struct {
		Advogado   bool `json:"advogado"`
		Cooperacao bool `json:"cooperacao"`
	} `json:"reducoes"`
	Observacoes string `json:"observacoes"`
	ImagemPreso string `json:"imagemPreso"`
	DataHora    string `json:"dataHora"`
}

func decodeLegacy(raw []byte) (*Backup, error) {
	var lb legacyBackup
	if err := json.Unmarshal(raw, &lb); err != nil {
		return nil, fmt.Errorf("failed to decode legacy backup: %w", err)
	}

	b := &Backup{
		Officers:      make([]models.User, 0, len(lb.Usuarios)),
		Statutes:      lb.Artigos,
		ArrestReports: make([]models.ArrestReport, 0, len(lb.Prisoes)),
		ExportedAt:    time.Now().UTC(),
	}
	if t, err := time.Parse(time.RFC3339, lb.Timestamp); err == nil {
		b.ExportedAt = t
	}

	for _, u := range lb.Usuarios {
		role, ok := roles.Parse(u.Tipo)
		if !ok {
			role = roles.Officer
		}
		b.Officers = append(b.Officers, models.User{Details: models.UserDetails{
			Name:           u.Nome,
			Passport:       u.Passaporte,
			Password:       u.Senha,
			Role:           string(role),
			Rank:           u.Patente,
			Age:            u.Idade,
			ProfilePicture: u.FotoPerfil,
			Active:         u.Ativo,
			CreatedAt:      u.CriadoEm,
		}})
	}

	for _, p := range lb.Prisoes {
		b.ArrestReports = append(b.ArrestReports, p.toReport())
	}
	return b, nil
}

func (p legacyArrest) toReport() models.ArrestReport {
	d := models.ArrestReportDetails{
		ReportNumber: p.NumeroPrisao,
		Accused: models.Accused{
			Name:     p.Acusado.Nome,
			Passport: p.Acusado.Passaporte,
			PhotoURL: p.Acusado.Foto,
		},
		Officer: models.Officer{
			Name:     p.Policial.Nome,
			Passport: p.Policial.Passaporte,
		},
		Violations: make([]models.StatuteViolation, 0, len(p.Crimes)),
		Totals: models.Totals{
			FineBase:      round(p.Totais.MultaOriginal),
			SentenceBase:  round(p.Totais.PrisaoOriginal),
			BailTotal:     round(p.Totais.Fianca),
			FineFinal:     round(p.Totais.MultaFinal),
			SentenceFinal: round(p.Totais.PrisaoFinal),
		},
		Reductions: models.Reductions{
			AttorneyApplied:    p.Reducoes.Advogado,
			CooperationApplied: p.Reducoes.Cooperacao,
		},
		Notes:     p.Observacoes,
		PhotoURL:  p.ImagemPreso,
		CreatedAt: p.DataHora,
	}
	if p.Advogado != nil && p.Advogado.Passaporte != "" {
		d.Attorney = &models.Attorney{Name: p.Advogado.Nome, Passport: p.Advogado.Passaporte}
	}
	for _, c := range p.Crimes {
		d.Violations = append(d.Violations, models.StatuteViolation{
			ID:          c.ID,
			Article:     c.Article,
			Description: c.Description,
			Fine:        round(c.Fine),
			Penalty:     round(c.Penalty),
			Bail:        round(c.Bail),
		})
	}
	return models.ArrestReport{Details: d}
}

func round(f float64) int64 {
	return int64(math.Round(f))
}
