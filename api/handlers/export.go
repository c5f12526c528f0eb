package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/backup"
	"github.com/linesmerrill/avenue-police-api/config"
)

// Export exists for the backup download handler
type Export struct {
	Stores backup.Stores
}

// ExportHandler streams a full JSON backup as an attachment
func (e Export) ExportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	b, err := backup.Export(ctx, e.Stores)
	if err != nil {
		config.ErrorStatus("failed to export data", http.StatusInternalServerError, w, err)
		return
	}

	p, _ := api.PrincipalFromContext(r.Context())
	zap.S().Infow("backup exported",
		"passport", p.Passport,
		"officers", len(b.Officers),
		"arrestReports", len(b.ArrestReports))

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="backup-avenue-%s.json"`, time.Now().UTC().Format("2006-01-02")))
	writeJSON(w, http.StatusOK, b)
}
