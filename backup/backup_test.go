package backup

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/databases/mocks"
	"github.com/linesmerrill/avenue-police-api/models"
)

const legacyFile = `{
  "usuarios": [
    {"id": "u1", "nome": "Carlos Lima", "passaporte": "101", "senha": "1234", "tipo": "comando", "ativo": true, "criadoEm": "2024-01-01T00:00:00Z"},
    {"id": "u2", "nome": "Beatriz Rocha", "passaporte": "102", "senha": "abcd", "tipo": "advogado", "ativo": false}
  ],
  "artigos": [
    {"id": "art-101", "article": "Art. 101", "description": "Speeding", "fine": 500, "penalty": 0, "bail": 0}
  ],
  "prisoes": [
    {
      "id": "p1",
      "numeroPrisao": 7,
      "acusado": {"nome": "John Doe", "passaporte": "555"},
      "policial": {"nome": "Carlos Lima", "passaporte": "101"},
      "advogado": {"nome": "Beatriz Rocha", "passaporte": "102"},
      "crimes": [{"id": "art-101", "article": "Art. 101", "description": "Speeding", "fine": 500, "penalty": 10, "bail": -1}],
      "totais": {"multaOriginal": 500, "prisaoOriginal": 10, "multaFinal": 280, "prisaoFinal": 5.6, "fianca": 0},
      "reducoes": {"advogado": true, "cooperacao": true},
      "dataHora": "10/03/2024, 14:30:00"
    }
  ],
  "timestamp": "2024-03-11T09:00:00Z"
}`

func TestDecodeLegacy(t *testing.T) {
	b, err := Decode(strings.NewReader(legacyFile))
	require.NoError(t, err)

	require.Len(t, b.Officers, 2)
	assert.Equal(t, "command", b.Officers[0].Details.Role)
	assert.Equal(t, "attorney", b.Officers[1].Details.Role)
	assert.False(t, b.Officers[1].Details.Active)
	assert.Equal(t, 2024, b.ExportedAt.Year())

	require.Len(t, b.ArrestReports, 1)
	d := b.ArrestReports[0].Details
	assert.Equal(t, int64(7), d.ReportNumber)
	assert.True(t, d.HasAttorney())
	assert.Equal(t, int64(280), d.Totals.FineFinal)
	assert.Equal(t, int64(6), d.Totals.SentenceFinal)
	assert.Equal(t, models.BailDenied, d.Violations[0].Bail)
	assert.Equal(t, "10/03/2024, 14:30:00", d.CreatedAt)
	assert.Equal(t, 4, b.Total())
}

func TestDecodeCurrentFormat(t *testing.T) {
	b, err := Decode(strings.NewReader(`{"officers": [], "statutes": [{"id": "art-1", "article": "Art. 1"}], "arrestReports": [{"_id": "65f000000000000000000001", "arrestReport": {"reportNumber": 3}}]}`))
	require.NoError(t, err)

	assert.Len(t, b.Statutes, 1)
	require.Len(t, b.ArrestReports, 1)
	assert.Equal(t, int64(3), b.ArrestReports[0].Details.ReportNumber)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader(`[1,2,3]`))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	udb := &mocks.UserDatabase{}
	sdb := &mocks.StatuteDatabase{}
	adb := &mocks.ArrestReportDatabase{}
	udb.On("ListOfficers", mock.Anything).Return([]models.User{{Details: models.UserDetails{Passport: "1"}}}, nil)
	sdb.On("List", mock.Anything).Return(databases.DefaultStatutes(), nil)
	adb.On("ListArrestReports", mock.Anything).Return([]models.ArrestReport{}, nil)

	b, err := Export(context.Background(), Stores{Officers: udb, Statutes: sdb, Reports: adb})
	require.NoError(t, err)
	assert.Len(t, b.Officers, 1)
	assert.Len(t, b.Statutes, len(databases.DefaultStatutes()))
	assert.False(t, b.ExportedAt.IsZero())
}

func TestExportFailure(t *testing.T) {
	udb := &mocks.UserDatabase{}
	udb.On("ListOfficers", mock.Anything).Return(nil, errors.New("boom"))

	_, err := Export(context.Background(), Stores{Officers: udb})
	assert.ErrorContains(t, err, "failed to list officers")
}

func TestImport(t *testing.T) {
	b, err := Decode(strings.NewReader(legacyFile))
	require.NoError(t, err)
	b.ArrestReports = append(b.ArrestReports,
		models.ArrestReport{Details: models.ArrestReportDetails{ReportNumber: 12}},
		models.ArrestReport{Details: models.ArrestReportDetails{ReportNumber: 9}},
	)

	udb := &mocks.UserDatabase{}
	sdb := &mocks.StatuteDatabase{}
	adb := &mocks.ArrestReportDatabase{}
	cdb := &mocks.CounterDatabase{}

	udb.On("FindByPassport", mock.Anything, "101").Return(&models.User{}, nil)
	udb.On("FindByPassport", mock.Anything, "102").Return(nil, databases.ErrNoDocuments)
	var inserted models.User
	udb.On("InsertOne", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(models.User) }).
		Return(nil, nil)

	sdb.On("Update", mock.Anything, "art-101", mock.Anything).Return(databases.ErrNoDocuments)
	sdb.On("Add", mock.Anything, mock.Anything).Return(models.StatuteViolation{ID: "art-101"}, nil)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key"}}}
	adb.On("InsertOne", mock.Anything, mock.MatchedBy(func(r models.ArrestReport) bool {
		return r.Details.ReportNumber == 9
	})).Return(nil, dup)
	adb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	cdb.On("AdvanceTo", mock.Anything, databases.ArrestReportSequence, int64(12)).Return(nil)

	steps := 0
	res, err := Import(context.Background(), Stores{Officers: udb, Statutes: sdb, Reports: adb, Counters: cdb}, b, func() { steps++ })
	require.NoError(t, err)

	assert.Equal(t, Result{
		OfficersCreated: 1,
		OfficersSkipped: 1,
		StatutesSaved:   1,
		ReportsCreated:  2,
		ReportsSkipped:  1,
		LastReportNum:   12,
	}, res)
	assert.Equal(t, b.Total(), steps)
	assert.True(t, isBcryptHash(inserted.Details.Password))
	assert.False(t, inserted.ID.IsZero())
	cdb.AssertExpectations(t)
}

func TestImportAssignsMissingNumbers(t *testing.T) {
	adb := &mocks.ArrestReportDatabase{}
	cdb := &mocks.CounterDatabase{}
	cdb.On("Next", mock.Anything, databases.ArrestReportSequence).Return(int64(40), nil)
	cdb.On("AdvanceTo", mock.Anything, databases.ArrestReportSequence, int64(40)).Return(nil)
	adb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	b := &Backup{ArrestReports: []models.ArrestReport{{}}}
	res, err := Import(context.Background(), Stores{Reports: adb, Counters: cdb}, b, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(40), res.LastReportNum)
}

func TestIsBcryptHash(t *testing.T) {
	assert.True(t, isBcryptHash("$2a$10$abcdefghijklmnopqrstuv"))
	assert.False(t, isBcryptHash("hunter2"))
}
