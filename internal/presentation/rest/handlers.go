package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/application/usecase"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

const maxUploadBytes = 32 << 20

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	submitApp   *usecase.SubmitApplicationUseCase
	getApp      *usecase.GetApplicationUseCase
	listApps    *usecase.ListApplicationsUseCase
	uploadDoc   *usecase.UploadDocumentUseCase
	reviewApp   *usecase.ReviewApplicationUseCase
	analyzeInc  *usecase.AnalyzeIncomeUseCase
	creditCheck *usecase.CreditCheckUseCase
	scoreVerif  *usecase.ScoreVerificationUseCase
	verifySelf  *usecase.VerifySelfieUseCase
	logger      *slog.Logger
}

// NewHandlers wires the handler set.
func NewHandlers(
	submitApp *usecase.SubmitApplicationUseCase,
	getApp *usecase.GetApplicationUseCase,
	listApps *usecase.ListApplicationsUseCase,
	uploadDoc *usecase.UploadDocumentUseCase,
	reviewApp *usecase.ReviewApplicationUseCase,
	analyzeInc *usecase.AnalyzeIncomeUseCase,
	creditCheck *usecase.CreditCheckUseCase,
	scoreVerif *usecase.ScoreVerificationUseCase,
	verifySelf *usecase.VerifySelfieUseCase,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		submitApp:   submitApp,
		getApp:      getApp,
		listApps:    listApps,
		uploadDoc:   uploadDoc,
		reviewApp:   reviewApp,
		analyzeInc:  analyzeInc,
		creditCheck: creditCheck,
		scoreVerif:  scoreVerif,
		verifySelf:  verifySelf,
		logger:      logger,
	}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handlers) formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, nil, false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" field is required")
		return nil, nil, false
	}
	return file, header, true
}

func readFormImage(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%s field is required", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("could not read %s", field)
	}
	return data, header.Filename, nil
}

// --- income analysis ---

// AnalyzeIncome accepts a multipart bank statement upload and returns the
// income heuristic result. Extraction details are never exposed to callers.
func (h *Handlers) AnalyzeIncome(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r, "file")
	if !ok {
		return
	}
	defer file.Close()

	resp, err := h.analyzeInc.Execute(r.Context(), file, header.Size)
	if err != nil {
		h.logger.Error("income analysis failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to process document")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"estimated_income":    resp.EstimatedIncome,
		"income_confidence":   resp.IncomeConfidence,
		"verification_source": resp.VerificationSource,
	})
}

// --- credit check ---

// CreditCheck pulls a bureau report for a national ID.
func (h *Handlers) CreditCheck(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditCheckRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.creditCheck.Execute(r.Context(), req.NationalID)
	if err != nil {
		if errors.Is(err, usecase.ErrNationalIDRequired) {
			writeError(w, http.StatusBadRequest, "National ID is required")
			return
		}
		h.logger.Error("credit check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "credit check failed")
		return
	}

	writeSuccess(w, http.StatusOK, report)
}

// --- verification score ---

// ScoreVerification runs the income/employment scorecard.
func (h *Handlers) ScoreVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.VerificationScoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeSuccess(w, http.StatusOK, h.scoreVerif.Execute(r.Context(), req))
}

// --- applications ---

// SubmitApplication creates a new loan application.
func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.submitApp.Execute(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusCreated, resp)
}

// GetApplication returns a single application with its documents.
func (h *Handlers) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	app, docs, err := h.getApp.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, port.ErrApplicationNotFound) {
			writeError(w, http.StatusNotFound, "application not found")
			return
		}
		h.logger.Error("get application failed", "application_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"application": app,
		"documents":   docs,
	})
}

// ListApplications lists applications for the admin portal, optionally
// filtered by status.
func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, err := valueobject.NewApplicationStatus(status); err != nil {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
	}

	apps, err := h.listApps.Execute(r.Context(), status)
	if err != nil {
		h.logger.Error("list applications failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeSuccess(w, http.StatusOK, apps)
}

// UploadDocument accepts a multipart statement upload for an application.
func (h *Handlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	file, header, ok := h.formFile(w, r, "file")
	if !ok {
		return
	}
	defer file.Close()

	resp, err := h.uploadDoc.Execute(r.Context(), usecase.UploadDocumentRequest{
		ApplicationID: id,
		Filename:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Size:          header.Size,
		Content:       file,
	})
	if err != nil {
		if errors.Is(err, port.ErrApplicationNotFound) {
			writeError(w, http.StatusNotFound, "application not found")
			return
		}
		h.logger.Error("document upload failed", "application_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to process document")
		return
	}

	writeSuccess(w, http.StatusCreated, resp)
}

// --- admin review ---

// ApproveApplication records an admin approval.
func (h *Handlers) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.reviewApp.Approve)
}

// RejectApplication records an admin rejection.
func (h *Handlers) RejectApplication(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.reviewApp.Reject)
}

func (h *Handlers) review(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, req dto.ReviewApplicationRequest) (dto.ApplicationResponse, error),
) {
	id := chi.URLParam(r, "id")

	var body struct {
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Reason == "" {
		writeError(w, http.StatusBadRequest, "reason is required")
		return
	}

	resp, err := decide(r.Context(), dto.ReviewApplicationRequest{
		ApplicationID: id,
		Reason:        body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, port.ErrApplicationNotFound):
			writeError(w, http.StatusNotFound, "application not found")
		case errors.Is(err, valueobject.ErrInvalidStatusTransition):
			writeError(w, http.StatusConflict, "application is not under review")
		default:
			h.logger.Error("review failed", "application_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

// --- selfie verification ---

// VerifySelfie compares a selfie against an ID document photo.
func (h *Handlers) VerifySelfie(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	applicationID := r.FormValue("application_id")
	if applicationID == "" {
		writeError(w, http.StatusBadRequest, "application_id is required")
		return
	}

	selfie, selfieName, err := readFormImage(r, "selfie")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	idPhoto, _, err := readFormImage(r, "id_photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.verifySelf.Execute(r.Context(), usecase.VerifySelfieRequest{
		ApplicationID: applicationID,
		Selfie:        selfie,
		IDPhoto:       idPhoto,
		Filename:      selfieName,
	})
	if err != nil {
		if errors.Is(err, port.ErrApplicationNotFound) {
			writeError(w, http.StatusNotFound, "application not found")
			return
		}
		h.logger.Error("selfie verification failed", "application_id", applicationID, "error", err)
		writeError(w, http.StatusInternalServerError, "selfie verification failed")
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}
