package v1

import (
	"net/http"

	"velora-backend/internal/domain"
	"velora-backend/internal/usecase"
	"velora-backend/pkg/utils"

	json "github.com/goccy/go-json"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
	reviewUC  *usecase.ReviewUsecase
}

func NewCatalogHandler(catalogUC *usecase.CatalogUsecase, reviewUC *usecase.ReviewUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, reviewUC: reviewUC}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Query:    q.Get("search"),
		Category: q.Get("category"),
		MinPrice: utils.ParseFloat(q.Get("minPrice"), 0),
		MaxPrice: utils.ParseFloat(q.Get("maxPrice"), 0),
		Sort:     q.Get("sort"),
		Limit:    utils.ParseInt(q.Get("limit"), 20),
		Offset:   utils.ParseInt(q.Get("offset"), 0),
	}

	products, total, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
	})
}

func (h *CatalogHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.GetFeatured(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// --- Reviews ---

func (h *CatalogHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUC.GetReviews(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req reviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	review, err := h.reviewUC.AddReview(r.Context(), user, r.PathValue("id"), req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, review)
}

func (h *CatalogHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req reviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	review, err := h.reviewUC.UpdateReview(r.Context(), user, r.PathValue("id"), req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

func (h *CatalogHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.reviewUC.DeleteReview(r.Context(), user, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}
