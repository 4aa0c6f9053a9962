// Package rest provides HTTP handlers for the storefront API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	serrors "github.com/sugrobov/storefront/internal/errors"
	"github.com/sugrobov/storefront/internal/mail"
	"github.com/sugrobov/storefront/internal/service"
	"github.com/sugrobov/storefront/pkg/web"
)

// defaultPageSize mirrors the original storefront's 12-per-page grid.
const defaultPageSize = service.DefaultPageSize

type Handler struct {
	service  service.CatalogService
	mailer   mail.Mailer
	validate *validator.Validate
	logger   *slog.Logger
	pageSize int
}

// NewHandler creates a new instance of the storefront API with the provided service.
// pageSize is the listing page size used when the request does not carry a limit;
// zero means the service default.
func NewHandler(service service.CatalogService, mailer mail.Mailer, pageSize int, logger *slog.Logger) *Handler {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return &Handler{
		service:  service,
		mailer:   mailer,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
		pageSize: pageSize,
	}
}

// RegisterRoutes registers the HTTP routes for the storefront.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.FindProductByID)
		r.Get("/categories", h.ListCategories)
		r.Post("/contact", h.Contact)
	})

	r.Get("/healthz", h.HealthCheck)
}

// ListProducts serves one page of the filtered catalog. Malformed
// paging or price parameters are normalized, not rejected.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	params := service.ListParams{
		Page:     web.QueryIntDefault(r, "page", 1),
		Limit:    web.QueryIntDefault(r, "limit", h.pageSize),
		Search:   web.QueryString(r, "search"),
		Category: web.QueryString(r, "category"),
		MinPrice: web.QueryString(r, "minPrice"),
		MaxPrice: web.QueryString(r, "maxPrice"),
	}

	mLogger.DebugContext(r.Context(), "Received request to list products",
		"page", params.Page, "limit", params.Limit, "search", params.Search)
	page, err := h.service.ListProducts(r.Context(), params)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Database error")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list",
		"count", len(page.Products), "total", page.Pagination.TotalItems)
	web.RespondJSON(w, mLogger, http.StatusOK, page)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, "Product not found")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Database error")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// ListCategories retrieves all categories ordered by name.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving categories", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Database error")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, categories)
}

// ContactDto represents an incoming contact-form message.
type ContactDto struct {
	Subject string `json:"subject" validate:"required,min=3"`
	Message string `json:"message" validate:"required,min=10"`
}

// Contact accepts a contact-form message and forwards it by mail. A mail
// delivery failure is logged but still answered with success; the sender
// cannot do anything about it.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var contactDto ContactDto
	if err := json.NewDecoder(r.Body).Decode(&contactDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(contactDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			mLogger.WarnContext(r.Context(), "Contact message rejected", "errors", validationErrors.Error())
			web.RespondError(w, mLogger, http.StatusBadRequest, contactValidationMessage(validationErrors))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.mailer.SendContactMessage(r.Context(), contactDto.Subject, contactDto.Message); err != nil {
		// Delivery problems are an operator concern, not the sender's.
		mLogger.ErrorContext(r.Context(), "Error sending contact message", "error", err)
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent successfully",
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func contactValidationMessage(validationErrors validator.ValidationErrors) string {
	for _, fieldErr := range validationErrors {
		if fieldErr.Field() == "Subject" {
			return "Subject is too short"
		}
	}
	return "Message is too short"
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
