package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/travelvault/internal/export"
)

// ExportHandler serves data exports as file downloads.
type ExportHandler struct {
	engine *export.Engine
	logger *slog.Logger
}

func NewExportHandler(engine *export.Engine, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{engine: engine, logger: logger}
}

// HandleExport renders the user's records in the requested format.
//
// GET /api/export/{format}?sections=travel,flights
//
// The sections parameter is a comma-separated subset of the six section
// keys; omitting it exports everything.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	format := export.Format(r.PathValue("format"))

	var sections []string
	if raw := r.URL.Query().Get("sections"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				sections = append(sections, key)
			}
		}
	}

	result, err := h.engine.Export(r.Context(), userID, format, sections)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		h.logger.Error("failed to write export response", slog.String("error", err.Error()))
	}
}
