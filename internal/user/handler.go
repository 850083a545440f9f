package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodrescue/backend/internal/httpx"
	"github.com/foodrescue/backend/internal/models"
)

// maxUploadMemory caps how much of a multipart body is buffered in
// memory before spilling to disk.
const maxUploadMemory = 8 << 20

// Handler holds the user HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the user endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/create_user", h.Create)
	r.Put("/update_user", h.Update)
	r.Post("/login", h.Login)
	r.Get("/get_user/{email}", h.Get)
	r.Delete("/delete_user/{email}", h.Delete)
	r.Put("/change_password/{email}", h.ChangePassword)
	r.Put("/upload_profile_pic/{email}", h.UploadProfilePic)
	r.Put("/delete_profile_pic/{email}", h.DeleteProfilePic)
}

// Create handles POST /create_user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "name, email, passwordHash, and phone are required")
		return
	}

	err := h.svc.Create(r.Context(), req.Name, req.Email, req.Password, req.Phone)
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, "User created successfully!")
	case errors.Is(err, models.ErrConflict):
		httpx.WriteMessage(w, http.StatusConflict, "User already exists!")
	default:
		httpx.Internal(w, err)
	}
}

// Update handles PUT /update_user. The body is an open field map; the
// email key selects the document and is itself immutable.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, _ := body["email"].(string)
	if email == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	err := h.svc.Update(r.Context(), email, httpx.MergeableFields(body, "email"))
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, "User updated successfully!")
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User does not exist!")
	default:
		httpx.Internal(w, err)
	}
}

// Login handles POST /login. The success body carries the redacted
// user view: no passwordHash, no image.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "email and passwordHash are required")
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful!",
			"user":    u.LoginView(),
		})
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User does not exist!")
	case errors.Is(err, models.ErrUnauthorized):
		httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid password!")
	default:
		httpx.Internal(w, err)
	}
}

// Get handles GET /get_user/{email}. PasswordHash never serializes.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	u, err := h.svc.Get(r.Context(), email)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, u)
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User does not exist!")
	default:
		httpx.Internal(w, err)
	}
}

// Delete handles DELETE /delete_user/{email}. Idempotent.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.svc.Delete(r.Context(), email); err != nil {
		httpx.Internal(w, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "User deleted successfully!")
}

// ChangePassword handles PUT /change_password/{email}.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "oldPassword and newPassword are required")
		return
	}

	err := h.svc.ChangePassword(r.Context(), email, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, "Password changed successfully!")
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User does not exist!")
	case errors.Is(err, models.ErrUnauthorized):
		httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid password!")
	default:
		httpx.Internal(w, err)
	}
}

// UploadProfilePic handles PUT /upload_profile_pic/{email}.
func (h *Handler) UploadProfilePic(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

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

	url, err := h.svc.UploadProfilePicture(
		r.Context(), email,
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
		httpx.WriteMessage(w, http.StatusNotFound, "User does not exist!")
	default:
		httpx.Internal(w, err)
	}
}

// DeleteProfilePic handles PUT /delete_profile_pic/{email}. A user with
// no stored image reports 404, not an idempotent success.
func (h *Handler) DeleteProfilePic(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	err := h.svc.DeleteProfilePicture(r.Context(), email)
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, "Profile image deleted successfully!")
	case errors.Is(err, models.ErrImageNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Profile image not found!")
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User does not exist!")
	default:
		httpx.Internal(w, err)
	}
}
