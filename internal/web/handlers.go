package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/adyajasola/stocksmart/internal/analytics"
	"github.com/adyajasola/stocksmart/internal/core"
	"github.com/adyajasola/stocksmart/internal/logging"
	"github.com/adyajasola/stocksmart/internal/report"
)

// ValidationResponse is the payload of POST /import/validate.
// Report fields are only present when validation found errors.
type ValidationResponse struct {
	Ok             bool          `json:"ok"`
	Summary        core.Summary  `json:"summary"`
	ErrorsCount    int           `json:"errors_count"`
	ErrorReportID  string        `json:"error_report_id,omitempty"`
	ErrorReportURL string        `json:"error_report_url,omitempty"`
	ErrorsPreview  core.Findings `json:"errors_preview"`
}

// CommitResponse is the payload of POST /import/commit.
type CommitResponse struct {
	Ok    bool              `json:"ok"`
	Saved core.CommitResult `json:"saved"`
	Note  string            `json:"note"`
}

// AlertsResponse is the payload of GET /dashboard/alerts.
type AlertsResponse struct {
	WindowDays int                    `json:"window_days"`
	Alerts     []analytics.AlertEntry `json:"alerts"`
}

// handleRoot is a minimal liveness endpoint.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"ok":      true,
		"service": "stocksmart",
		"module":  "input",
	})
}

// readTables extracts the three dataset files from a multipart upload.
// A missing part or an unreadable file aborts with a 400 naming the file.
func (s *Server) readTables(w http.ResponseWriter, r *http.Request) (core.TableSet, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		s.respondError(w, r, badRequest("BAD_UPLOAD", "upload too large or invalid multipart form"), err)
		return core.TableSet{}, false
	}

	var ts core.TableSet
	for _, part := range []struct {
		field string
		dest  *core.Table
	}{
		{"products", &ts.Products},
		{"inventory", &ts.Inventory},
		{"sales", &ts.Sales},
	} {
		file, header, err := r.FormFile(part.field)
		if err != nil {
			s.respondError(w, r, badRequest("MISSING_FILE",
				fmt.Sprintf("missing %s file", part.field)), err)
			return core.TableSet{}, false
		}

		table, err := core.ReadTable(file, header.Filename)
		file.Close()
		if err != nil {
			var loadErr *core.LoadError
			if errors.As(err, &loadErr) {
				s.respondError(w, r, badRequest("BAD_FILE", loadErr.Error()), err)
			} else {
				s.respondError(w, r, internalError("failed to read upload"), err)
			}
			return core.TableSet{}, false
		}
		*part.dest = table
	}
	return ts, true
}

// handleValidate runs the full validation pipeline over a submission.
// The result is always a structured payload, ok=false carrying a preview
// plus a downloadable report; only malformed uploads get a direct
// rejection.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ts, ok := s.readTables(w, r)
	if !ok {
		return
	}

	findings := core.Validate(ts)
	resp := ValidationResponse{
		Ok:            len(findings) == 0,
		Summary:       ts.Summary(),
		ErrorsCount:   len(findings),
		ErrorsPreview: core.Findings{},
	}

	if len(findings) > 0 {
		id, err := s.reports.Write(findings)
		if err != nil {
			s.respondError(w, r, internalError("failed to persist error report"), err)
			return
		}
		resp.ErrorReportID = id
		resp.ErrorReportURL = "/import/error-report/" + id
		resp.ErrorsPreview = findings.Preview(s.cfg.Import.PreviewLen)
	}

	logging.FromContext(r.Context()).Info("validation finished",
		"ok", resp.Ok,
		"errors", resp.ErrorsCount,
		"products_rows", resp.Summary.ProductsRows,
		"inventory_rows", resp.Summary.InventoryRows,
		"sales_rows", resp.Summary.SalesRows,
	)

	render.JSON(w, r, resp)
}

// handleCommit upserts a structurally valid submission into the store.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	ts, ok := s.readTables(w, r)
	if !ok {
		return
	}

	result, err := core.Commit(r.Context(), s.store, ts)
	if err != nil {
		if errors.Is(err, core.ErrSchemaIncomplete) {
			s.respondError(w, r, badRequest("MISSING_COLUMNS",
				"Missing required columns. Run /import/validate first."), err)
			return
		}
		s.respondError(w, r, internalError("commit failed"), err)
		return
	}

	logging.FromContext(r.Context()).Info("commit finished",
		"products_upserted", result.ProductsUpserted,
		"inventory_upserted", result.InventoryUpserted,
		"sales_attempted", result.SalesAttempted,
	)

	render.JSON(w, r, CommitResponse{
		Ok:    true,
		Saved: result,
		Note:  "Sales duplicates (same sku+ts) are skipped.",
	})
}

// handleErrorReport serves a persisted error report by id.
// Default format is CSV; ?format=xlsx renders an Excel workbook.
func (s *Server) handleErrorReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	if r.URL.Query().Get("format") == "xlsx" {
		data, err = s.reports.ReadXLSX(id)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "import_error_report.xlsx"
	} else {
		data, err = s.reports.ReadCSV(id)
		contentType = "text/csv"
		filename = "import_error_report.csv"
	}
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			s.respondError(w, r, notFound("Error report not found"), err)
			return
		}
		s.respondError(w, r, internalError("failed to read error report"), err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// handleKPIs serves the windowed KPI snapshot.
func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	days := parseIntParam(r, "days", s.cfg.Analytics.DefaultWindowDays)

	snap, err := s.engine.Snapshot(r.Context(), days)
	if err != nil {
		s.respondError(w, r, internalError("failed to compute KPIs"), err)
		return
	}
	render.JSON(w, r, snap)
}

// handleAlerts serves the ranked reorder alert list.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	days := parseIntParam(r, "days", s.cfg.Analytics.DefaultWindowDays)
	limit := parseIntParam(r, "limit", s.cfg.Analytics.DefaultAlertLimit)

	alerts, err := s.engine.Alerts(r.Context(), days, limit)
	if err != nil {
		s.respondError(w, r, internalError("failed to compute alerts"), err)
		return
	}
	if alerts == nil {
		alerts = []analytics.AlertEntry{}
	}
	render.JSON(w, r, AlertsResponse{
		WindowDays: analytics.ClampWindow(days),
		Alerts:     alerts,
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
