package v1

import (
	"net/http"

	"velora-backend/internal/usecase"
	"velora-backend/pkg/utils"

	json "github.com/goccy/go-json"
)

type ReturnHandler struct {
	returnUC *usecase.ReturnUsecase
}

func NewReturnHandler(uc *usecase.ReturnUsecase) *ReturnHandler {
	return &ReturnHandler{returnUC: uc}
}

func (h *ReturnHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input usecase.CreateReturnInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ret, err := h.returnUC.CreateReturn(r.Context(), user, input)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ret)
}

func (h *ReturnHandler) GetMyReturns(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	returns, err := h.returnUC.GetMyReturns(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, returns)
}

func (h *ReturnHandler) GetReturn(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ret, err := h.returnUC.GetReturn(r.Context(), user, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ret)
}

// --- Admin ---

func (h *ReturnHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.returnUC.ListReturns(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, returns)
}

type updateReturnStatusReq struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

func (h *ReturnHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateReturnStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ret, err := h.returnUC.UpdateStatus(r.Context(), r.PathValue("id"), req.Status, req.AdminNotes)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ret)
}
