package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shaiso/Vitrina/internal/domain"
)

// CreateProduct создаёт товар.
// POST /api/v1/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}

	product := &domain.Product{
		Name:              req.Name,
		Status:            domain.StatusDraft,
		CatalogVisibility: domain.VisibilityVisible,
		Featured:          req.Featured,
	}
	if req.Status != "" {
		status := domain.ProductStatus(req.Status)
		if !status.Valid() {
			BadRequest(w, "invalid status")
			return
		}
		product.Status = status
	}
	if req.CatalogVisibility != "" {
		visibility := domain.CatalogVisibility(req.CatalogVisibility)
		if !visibility.Valid() {
			BadRequest(w, "invalid catalog_visibility")
			return
		}
		product.CatalogVisibility = visibility
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, ProductFromDomain(product))
}

// GetProduct возвращает товар по ID.
// GET /api/v1/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid product id")
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "product not found") {
		return
	}

	Success(w, ProductFromDomain(product))
}

// ListProducts возвращает список товаров.
// GET /api/v1/products?limit=...&offset=...
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	products, err := h.productRepo.List(r.Context(), limit, offset)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]ProductResponse, len(products))
	for i := range products {
		result[i] = ProductFromDomain(&products[i])
	}

	List(w, result, len(result))
}

// parseID парсит числовой идентификатор из пути.
func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// queryInt парсит числовой query-параметр с дефолтом.
func queryInt(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
