package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/avenue-police-api/models"
)

func sampleReport() models.ArrestReport {
	return models.ArrestReport{Details: models.ArrestReportDetails{
		ReportNumber: 42,
		Accused:      models.Accused{Name: "John Doe", Passport: "555"},
		Officer:      models.Officer{Name: "Ana Souza", Passport: "123"},
		Attorney:     &models.Attorney{Name: "Saul Goodman", Passport: "999"},
		Violations: []models.StatuteViolation{
			{ID: "art-101", Article: "Art. 101", Description: "Speeding", Fine: 1000, Penalty: 10},
		},
		Totals:     models.Totals{FineFinal: 560, SentenceFinal: 6, BailTotal: 0},
		Reductions: models.Reductions{AttorneyApplied: true, CooperationApplied: true},
		Notes:      "resisted",
		PhotoURL:   "https://res.cloudinary.com/demo/image/upload/x.png",
		CreatedAt:  "2024-03-10T12:00:00Z",
	}}
}

func TestNewDiscordWithoutURLIsNop(t *testing.T) {
	assert.IsType(t, Nop{}, NewDiscord(""))
	assert.NoError(t, Nop{}.ArrestSubmitted(context.Background(), sampleReport(), 1))
}

func TestBuildArrestEmbed(t *testing.T) {
	payload := BuildArrestEmbed(sampleReport(), 7)
	require.Len(t, payload.Embeds, 1)
	embed := payload.Embeds[0]

	names := []string{}
	for _, f := range embed.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Accused", "Arresting officer", "Attorney", "Charges", "Final penalties", "Reductions", "Notes"}, names)
	assert.Contains(t, embed.Fields[1].Value, "**Arrests made:** 7")
	assert.Contains(t, embed.Fields[4].Value, "No bail")
	assert.Contains(t, embed.Fields[5].Value, "Attorney (-30%)")
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/x.png", embed.Image.URL)
	assert.Contains(t, embed.Footer.Text, "Arrest #42")
}

func TestBuildArrestEmbedWithoutAttorney(t *testing.T) {
	r := sampleReport()
	r.Details.Attorney = nil
	r.Details.Notes = ""
	r.Details.PhotoURL = ""
	r.Details.Totals.BailTotal = 2500

	embed := BuildArrestEmbed(r, 1).Embeds[0]
	assert.Len(t, embed.Fields, 5)
	assert.Nil(t, embed.Image)
	assert.Contains(t, embed.Fields[3].Value, "$2500")
}

func TestDiscordArrestSubmitted(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscord(srv.URL)
	require.NoError(t, d.ArrestSubmitted(context.Background(), sampleReport(), 3))
	assert.Equal(t, "ARREST REPORT", got.Embeds[0].Title)
}

func TestDiscordArrestSubmittedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewDiscord(srv.URL).ArrestSubmitted(context.Background(), sampleReport(), 3)
	assert.ErrorContains(t, err, "429")
}
