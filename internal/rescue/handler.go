package rescue

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodrescue/backend/internal/httpx"
	"github.com/foodrescue/backend/internal/models"
)

const maxUploadMemory = 8 << 20

// Handler holds the rescue HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the rescue endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/create_rescue", h.Create)
	r.Get("/get_rescues", h.List)
	r.Get("/get_rescue/{id}", h.Get)
	r.Put("/update_rescue", h.Update)
	r.Get("/get_user_rescues/{email}", h.ListByOwner)
	r.Delete("/delete_rescue/{id}", h.Delete)
	r.Post("/upload_rescue_pic/{id}", h.UploadPic)
}

// Create handles POST /create_rescue.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRescueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RescueID == "" || req.Title == "" || req.Desc == "" || req.Date == "" ||
		req.Email == "" || req.Location == "" || req.Phone == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "rescue_id, title, desc, date, email, location, and phone are required")
		return
	}

	err := h.svc.Create(r.Context(), &req)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"message":   "rescue created successfully!",
			"rescue_id": req.RescueID,
		})
	case errors.Is(err, models.ErrConflict):
		httpx.WriteMessage(w, http.StatusConflict, "rescue already exists!")
	default:
		httpx.Internal(w, err)
	}
}

// List handles GET /get_rescues.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rescues, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if rescues == nil {
		rescues = []models.Rescue{}
	}
	httpx.WriteJSON(w, http.StatusOK, rescues)
}

// Get handles GET /get_rescue/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rescue, err := h.svc.Get(r.Context(), id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, rescue)
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "rescue does not exist!")
	default:
		httpx.Internal(w, err)
	}
}

// Update handles PUT /update_rescue. The body is an open field map; the
// rescue_id key selects the document and is itself immutable.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, _ := body["rescue_id"].(string)
	if id == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "rescue_id is required")
		return
	}

	err := h.svc.Update(r.Context(), id, httpx.MergeableFields(body, "rescue_id"))
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, "Rescue updated successfully!")
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "rescue does not exist!")
	default:
		httpx.Internal(w, err)
	}
}

// ListByOwner handles GET /get_user_rescues/{email}.
func (h *Handler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	rescues, err := h.svc.ListByOwner(r.Context(), email)
	if err != nil {
		httpx.Internal(w, err)
		return
	}
	if rescues == nil {
		rescues = []models.Rescue{}
	}
	httpx.WriteJSON(w, http.StatusOK, rescues)
}

// Delete handles DELETE /delete_rescue/{id}. Idempotent.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Internal(w, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "rescue deleted successfully!")
}

// UploadPic handles POST /upload_rescue_pic/{id}.
func (h *Handler) UploadPic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "No file selected for uploading")
		return
	}

	url, err := h.svc.UploadPicture(
		r.Context(), id,
		file, header.Size, header.Filename,
		header.Header.Get("Content-Type"),
	)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"message":  "File uploaded successfully",
			"file_url": url,
		})
	case errors.Is(err, models.ErrBadRequest):
		httpx.WriteMessage(w, http.StatusBadRequest, "No file selected for uploading")
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "rescue does not exist!")
	default:
		httpx.Internal(w, err)
	}
}
