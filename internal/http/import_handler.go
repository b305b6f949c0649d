package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
	"kolejki-fizjo/internal/service"
)

type ImportHandler struct {
	app    *service.App
	logger *zap.Logger
}

func NewImportHandler(app *service.App, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{app: app, logger: logger}
}

// UploadFile ingests one spreadsheet for one cohort. The response is either
// a committed summary, a blocking issues list (nothing committed), or an
// error; duplicate card numbers downgrade the envelope to a warning.
func (h *ImportHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusOK, Fail("file exceeds the 25 MB limit or the request is malformed"))
		return
	}

	cohort, ok := domain.ParseCohort(r.FormValue("cohort"))
	if !ok {
		writeJSON(w, http.StatusOK, Fail("unknown cohort"))
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("file not found in request"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to read file"))
		return
	}

	out, err := h.app.ImportFile(r.Context(), data, hdr.Filename, cohort)
	if err != nil {
		var missing importer.MissingColumnsError
		switch {
		case errors.Is(err, importer.ErrFileTooLarge):
			writeJSON(w, http.StatusOK, Fail("file exceeds the 25 MB limit; split it or drop unused sheets"))
		case errors.As(err, &missing):
			writeJSON(w, http.StatusOK, Fail(missing.Error()))
		default:
			h.logger.Warn("import failed", zap.Error(err))
			writeJSON(w, http.StatusOK, Fail("could not read the spreadsheet; make sure it is an .xlsx file"))
		}
		return
	}

	if out.Committed && len(out.Duplicates) > 0 {
		cards := make([]string, len(out.Duplicates))
		for i, d := range out.Duplicates {
			cards[i] = fmt.Sprintf("%s (x%d)", d.Card, d.Count)
		}
		writeJSON(w, http.StatusOK, Warn(
			"duplicate card numbers detected, treatments merged: "+strings.Join(cards, ", "), out))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}
