package v1

import (
	"net/http"

	"velora-backend/internal/domain"
	"velora-backend/internal/usecase"
	"velora-backend/pkg/utils"

	json "github.com/goccy/go-json"
)

type ContentHandler struct {
	contentUC *usecase.ContentUsecase
}

func NewContentHandler(uc *usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{contentUC: uc}
}

// --- Hero slides ---

func (h *ContentHandler) GetActiveSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.contentUC.GetActiveSlides(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, slides)
}

func (h *ContentHandler) GetAllSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.contentUC.GetAllSlides(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, slides)
}

func (h *ContentHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var slide domain.HeroSlide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.contentUC.CreateSlide(r.Context(), &slide)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	var slide domain.HeroSlide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	slide.ID = r.PathValue("id")
	updated, err := h.contentUC.UpdateSlide(r.Context(), &slide)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *ContentHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	if err := h.contentUC.DeleteSlide(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Slide deleted"})
}

func (h *ContentHandler) ToggleSlide(w http.ResponseWriter, r *http.Request) {
	slide, err := h.contentUC.ToggleSlide(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, slide)
}

type reorderReq struct {
	Slides []domain.SlideOrder `json:"slides"`
}

func (h *ContentHandler) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var req reorderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.contentUC.ReorderSlides(r.Context(), req.Slides); err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Slides reordered"})
}

// --- Contact messages ---

func (h *ContentHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.contentUC.SubmitMessage(r.Context(), &msg)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contentUC.ListMessages(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, messages)
}

func (h *ContentHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contentUC.GetMessage(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, msg)
}

func (h *ContentHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.contentUC.DeleteMessage(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}
