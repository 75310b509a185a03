package techstack

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vkportfolio/service-core-go/internal/techstack/entity"
)

// Handler exposes HTTP endpoints for tech-stack CRUD.
type Handler struct {
	svc      *Service
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, validate: validator.New(), logger: logger}
}

// UpsertRequest request body for create and update.
type UpsertRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Proficiency int    `json:"proficiency" validate:"min=0,max=100"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	items, err := h.svc.List(r.Context(), q.Get("category"), limit, offset)
	if err != nil {
		h.logger.Errorw("list tech stack failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "list failed")
		return
	}
	h.ok(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.fail(w, http.StatusNotFound, "tech stack entry not found")
			return
		}
		h.logger.Errorw("get tech stack failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "get failed")
		return
	}
	h.ok(w, http.StatusOK, ts)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	ts, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.logger.Warnw("create tech stack failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "create failed")
		return
	}
	h.ok(w, http.StatusCreated, ts)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	in.ID = r.PathValue("id")
	ts, err := h.svc.Update(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.fail(w, http.StatusNotFound, "tech stack entry not found")
			return
		}
		h.logger.Errorw("update tech stack failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "update failed")
		return
	}
	h.ok(w, http.StatusOK, ts)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.fail(w, http.StatusNotFound, "tech stack entry not found")
			return
		}
		h.logger.Errorw("delete tech stack failed", "err", err)
		h.fail(w, http.StatusInternalServerError, "delete failed")
		return
	}
	h.ok(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*entity.TechStack, bool) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid payload")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, http.StatusBadRequest, "name is required and proficiency must be 0-100")
		return nil, false
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &entity.TechStack{
		Name:        req.Name,
		Category:    req.Category,
		Icon:        req.Icon,
		Proficiency: req.Proficiency,
		Order:       req.Order,
		IsActive:    active,
	}, true
}

func (h *Handler) ok(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
