package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/audiopanel/backend/internal/api/middleware"
	"github.com/audiopanel/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const coverImageField = "coverImage"

type ProductHandler struct {
	productService *service.ProductService
	maxUploadSize  int64
}

func NewProductHandler(productService *service.ProductService, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{productService: productService, maxUploadSize: maxUploadSize}
}

type createProductForm struct {
	Name   string `json:"name" validate:"required,max=100"`
	Artist string `json:"artist" validate:"required,max=100"`
}

type updateProductForm struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Artist *string `json:"artist" validate:"omitempty,min=1,max=100"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.productService.List(r.Context(), user.ID, page, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.productService.Get(r.Context(), user.ID, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	if !h.parseMultipart(w, r) {
		return
	}

	form := createProductForm{
		Name:   r.FormValue("name"),
		Artist: r.FormValue("artist"),
	}
	if details := checkStruct(form); details != nil {
		respondValidationError(w, details)
		return
	}

	upload, cleanup, ok := h.coverImage(w, r, true)
	if !ok {
		return
	}
	defer cleanup()

	product, err := h.productService.Create(r.Context(), user.ID, service.CreateProductInput{
		Name:   form.Name,
		Artist: form.Artist,
		File:   upload,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if !h.parseMultipart(w, r) {
		return
	}

	form := updateProductForm{
		Name:   formValue(r, "name"),
		Artist: formValue(r, "artist"),
	}
	if details := checkStruct(form); details != nil {
		respondValidationError(w, details)
		return
	}

	upload, cleanup, ok := h.coverImage(w, r, false)
	if !ok {
		return
	}
	defer cleanup()

	product, err := h.productService.Update(r.Context(), user.ID, id, service.UpdateProductInput{
		Name:   form.Name,
		Artist: form.Artist,
		File:   upload,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.productService.Delete(r.Context(), user.ID, id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseMultipart enforces the upload size limit while reading the form.
func (h *ProductHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusBadRequest, "File too large. Maximum 5MB allowed.")
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

// coverImage extracts the uploaded file. With required set, a missing file is
// a 400; otherwise it yields a nil upload.
func (h *ProductHandler) coverImage(w http.ResponseWriter, r *http.Request, required bool) (*service.Upload, func(), bool) {
	file, header, err := r.FormFile(coverImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			if required {
				respondError(w, http.StatusBadRequest, "Cover image is required")
				return nil, nil, false
			}
			return nil, func() {}, true
		}
		respondError(w, http.StatusBadRequest, "Invalid file upload")
		return nil, nil, false
	}

	if header.Size > h.maxUploadSize {
		file.Close()
		respondError(w, http.StatusBadRequest, "File too large. Maximum 5MB allowed.")
		return nil, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		respondError(w, http.StatusBadRequest, "Only image files are allowed")
		return nil, nil, false
	}

	upload := &service.Upload{
		Reader:      file,
		Size:        header.Size,
		ContentType: contentType,
		Filename:    header.Filename,
	}
	return upload, func() { file.Close() }, true
}

func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
