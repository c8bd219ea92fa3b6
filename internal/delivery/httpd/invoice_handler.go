package httpd

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NourJadiri/invox-app/internal/document"
	"github.com/NourJadiri/invox-app/internal/models"
	"github.com/NourJadiri/invox-app/internal/service"
)

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.StudentIDs) == 0 {
		writeError(w, http.StatusBadRequest, "student_ids is required")
		return
	}

	ctx := r.Context()
	invoice, err := h.invoiceService.CreateInvoice(ctx, &req)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    invoice,
	})
}

func (h *Handler) GetAllInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invoices, err := h.invoiceService.GetInvoices(ctx)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	if invoices == nil {
		invoices = []models.InvoiceWithStudents{}
	}

	writeSuccess(w, invoices)
}

func (h *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	ctx := r.Context()
	invoice, err := h.invoiceService.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	writeSuccess(w, invoice)
}

func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	ctx := r.Context()
	if err := h.invoiceService.DeleteInvoice(ctx, invoiceID); err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Invoice deleted successfully",
	})
}

// PreviewDocument computes a document over an arbitrary period without
// storing anything, for the on-screen preview.
func (h *Handler) PreviewDocument(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceDocumentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	doc, err := h.invoiceService.BuildDocument(ctx, &req)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	writeSuccess(w, doc)
}

func (h *Handler) DownloadDocumentPDF(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceDocumentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	doc, err := h.invoiceService.BuildDocument(ctx, &req)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	// ad-hoc documents are never archived
	h.renderAndServePDF(w, r, doc, "")
}

func (h *Handler) GetInvoiceDocument(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	ctx := r.Context()
	doc, err := h.invoiceService.BuildStoredDocument(ctx, invoiceID)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	writeSuccess(w, doc)
}

func (h *Handler) DownloadInvoicePDF(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	ctx := r.Context()
	doc, err := h.invoiceService.BuildStoredDocument(ctx, invoiceID)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	// Stored invoices are immutable snapshots: once a PDF has been archived,
	// serve that copy instead of re-rendering against lessons that may have
	// changed since the invoice was issued.
	key := fmt.Sprintf("invoices/facture-%d.pdf", doc.Number)
	if h.archive != nil {
		if pdf, err := h.archive.Get(ctx, key); err == nil && len(pdf) > 0 {
			writePDF(w, pdf)
			return
		}
	}

	h.renderAndServePDF(w, r, doc, key)
}

// renderAndServePDF renders the document to PDF and streams it back. A
// non-empty archiveKey keeps a copy in the configured archive, best effort.
func (h *Handler) renderAndServePDF(w http.ResponseWriter, r *http.Request, doc *document.Document, archiveKey string) {
	html, err := document.BuildHTML(*doc, h.invoiceConfig)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build invoice HTML")
		writeError(w, http.StatusInternalServerError, "Failed to build invoice document")
		return
	}

	ctx := r.Context()
	pdf, err := h.renderer.RenderPDF(ctx, html)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render invoice PDF")
		writeError(w, http.StatusInternalServerError, "Failed to render invoice PDF")
		return
	}

	if h.archive != nil && archiveKey != "" {
		if err := h.archive.Put(ctx, archiveKey, pdf, "application/pdf"); err != nil {
			h.logger.Error().Err(err).Str("key", archiveKey).Msg("Failed to archive invoice PDF")
		}
	}

	writePDF(w, pdf)
}

func (h *Handler) handleInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvoiceNotFound), errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "Invoice not found")
	default:
		h.logger.Error().Err(err).Msg("Invoice service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
