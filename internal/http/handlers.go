package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tracker/internal/core"
	"tracker/internal/log"
)

const (
	msgStorageFailure = "We couldn't save your contribution. Please try again."
	msgBadRequest     = "Invalid request."

	msgSummaryUnavailable = "Team totals are unavailable right now."
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether templates are loaded and the store answers a
// full read. Store errors are named, never detailed.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if _, err := s.reporter.Strict().ComputeSummary(ctx); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness store check failed",
			log.FieldError, err, log.FieldOperation, log.OpFetch)
		checks["store"] = "unavailable"
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

// indexData is what index.html renders.
type indexData struct {
	Title   string
	Types   []core.ContributionType
	Summary summaryView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.summary(w, r)
	if !ok {
		return
	}
	s.render(w, r, "index.html", indexData{
		Title:   s.title,
		Types:   core.ContributionTypes(),
		Summary: newSummaryView(summary),
	})
}

// handleSummaryPartial renders the dashboard fragment swapped in by the
// refresh button and after each submission.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.summary(w, r)
	if !ok {
		return
	}
	s.render(w, r, "summary.html", newSummaryView(summary))
}

func (s *Server) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.summary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSummaryJSON(summary))
}

// summary runs the reporter. With the default fail-soft policy it always
// succeeds; a strict reporter's error becomes a generic 503.
func (s *Server) summary(w http.ResponseWriter, r *http.Request) (core.Summary, bool) {
	sum, err := s.reporter.ComputeSummary(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Summary unavailable",
			log.FieldError, err, log.FieldOperation, log.OpSummarize)
		ErrorResponse(http.StatusServiceUnavailable, msgSummaryUnavailable).Write(w)
		return core.Summary{}, false
	}
	return sum, true
}

func (s *Server) handleCreateContribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	sub, err := ParseSubmission(r)
	if err != nil {
		logger.WarnContext(ctx, "Unreadable submission", log.FieldError, err, log.FieldOperation, log.OpParse)
		BadRequestError(msgBadRequest).Write(w)
		return
	}

	rec, err := s.submitter.Submit(ctx, sub)
	if err != nil {
		var ve *core.ValidationError
		switch {
		case errors.As(err, &ve):
			logger.InfoContext(ctx, "Submission rejected",
				log.FieldErrorType, log.ErrorTypeValidation, "field", ve.Field, log.FieldError, ve.Error())
			WarningResponse("Please check your entry: " + ve.Error() + ".").Write(w)
		case core.IsStorage(err):
			// Already logged with its cause by the submitter.
			BadGatewayError(msgStorageFailure).Write(w)
		default:
			logger.ErrorContext(ctx, "Unexpected submission failure", log.FieldError, err)
			InternalServerError(msgStorageFailure).Write(w)
		}
		return
	}

	msg := fmt.Sprintf("Thanks, %s! We've logged %s for %s.", rec.Name, core.FormatAmount(rec.Amount), rec.Type)
	SuccessResponse(msg).
		TriggerContributionCreated(rec.Type.String()).
		TriggerFormReset().
		Write(w)
}

// render executes a template into a buffer first so a failure can still
// produce a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		InternalServerError("Templates not loaded.").Write(w)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err, log.FieldOperation, log.OpRender, "template", name)
		InternalServerError("Could not render page.").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
