package httpd

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/config"
	"github.com/NourJadiri/invox-app/internal/document"
	"github.com/NourJadiri/invox-app/internal/service"
	"github.com/NourJadiri/invox-app/internal/storage"
)

type Handler struct {
	studentService service.StudentService
	lessonService  service.LessonService
	invoiceService service.InvoiceService
	pricingService service.PricingService
	syncService    service.CalendarSyncService
	renderer       document.Renderer
	archive        storage.Archive
	invoiceConfig  config.InvoiceConfig
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewHandler(
	studentService service.StudentService,
	lessonService service.LessonService,
	invoiceService service.InvoiceService,
	pricingService service.PricingService,
	syncService service.CalendarSyncService,
	renderer document.Renderer,
	archive storage.Archive,
	invoiceConfig config.InvoiceConfig,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		studentService: studentService,
		lessonService:  lessonService,
		invoiceService: invoiceService,
		pricingService: pricingService,
		syncService:    syncService,
		renderer:       renderer,
		archive:        archive,
		invoiceConfig:  invoiceConfig,
		validate:       validator.New(),
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(calendarTokenMiddleware)

		api.Route("/students", func(r chi.Router) {
			r.Post("/", h.CreateStudent)
			r.Get("/", h.GetAllStudents)
			r.Get("/{id}", h.GetStudentByID)
			r.Get("/{id}/lessons", h.GetStudentWithLessons)
			r.Put("/{id}", h.UpdateStudent)
			r.Delete("/{id}", h.DeleteStudent)
		})

		api.Route("/lessons", func(r chi.Router) {
			r.Post("/", h.CreateLesson)
			r.Get("/", h.GetAllLessons)
			r.Post("/apply-default-prices", h.ApplyDefaultPrices)
			r.Get("/{id}", h.GetLessonByID)
			r.Get("/{id}/instances", h.GetLessonInstances)
			r.Put("/{id}", h.UpdateLesson)
			r.Delete("/{id}", h.DeleteLesson)
		})

		api.Route("/invoices", func(r chi.Router) {
			r.Post("/", h.CreateInvoice)
			r.Get("/", h.GetAllInvoices)
			r.Post("/document", h.PreviewDocument)
			r.Post("/document/pdf", h.DownloadDocumentPDF)
			r.Get("/{id}", h.GetInvoiceByID)
			r.Get("/{id}/document", h.GetInvoiceDocument)
			r.Get("/{id}/pdf", h.DownloadInvoicePDF)
			r.Delete("/{id}", h.DeleteInvoice)
		})

		api.Route("/calendar", func(r chi.Router) {
			r.Get("/status", h.CalendarStatus)
			r.Post("/sync", h.SyncCalendar)
			r.Post("/import", h.ImportLessons)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "invox",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) decodeAndValidate(r *http.Request, req interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}
	return h.validate.Struct(req)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}

func writePDF(w http.ResponseWriter, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=invoice.pdf`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
