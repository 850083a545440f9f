package rescue

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodrescue/backend/internal/models"
)

func newTestRouter(t *testing.T) (chi.Router, *fakeRescueStore) {
	t.Helper()
	st := newFakeRescueStore()
	r := chi.NewRouter()
	r.Group(NewHandler(NewService(st, newFakeFileStore(), nil)).Routes)
	return r, st
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createRescueBody(id, email string) map[string]interface{} {
	return map[string]interface{}{
		"rescue_id": id,
		"title":     "Bread surplus",
		"desc":      "Day-old loaves",
		"date":      "2024-06-01",
		"email":     email,
		"location":  "Market St 5",
		"phone":     "555",
	}
}

func TestCreateRescueEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	body := createRescueBody("r1", "a@x.com")

	rec := doJSON(t, r, http.MethodPost, "/create_rescue", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "r1", resp["rescue_id"])

	// Image omitted: placeholder stored.
	assert.Equal(t, models.DefaultRescueImage, st.rescues["r1"].Image)

	rec = doJSON(t, r, http.MethodPost, "/create_rescue", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetRescuesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	// Empty store: an empty array, never null.
	rec := doJSON(t, r, http.MethodGet, "/get_rescues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r1", "a@x.com"))
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r2", "b@x.com"))

	rec = doJSON(t, r, http.MethodGet, "/get_rescues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rescues []models.Rescue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rescues))
	assert.Len(t, rescues, 2)
}

func TestGetRescueEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r1", "a@x.com"))

	rec := doJSON(t, r, http.MethodGet, "/get_rescue/r1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rescue models.Rescue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rescue))
	assert.Equal(t, "Bread surplus", rescue.Title)

	rec = doJSON(t, r, http.MethodGet, "/get_rescue/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRescueEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r1", "a@x.com"))

	rec := doJSON(t, r, http.MethodPut, "/update_rescue", map[string]interface{}{
		"rescue_id": "r1",
		"title":     "Fresh bread",
		"phone":     nil,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fresh bread", st.rescues["r1"].Title)
	assert.Equal(t, "555", st.rescues["r1"].Phone)

	rec = doJSON(t, r, http.MethodPut, "/update_rescue", map[string]interface{}{
		"rescue_id": "ghost", "title": "X",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPut, "/update_rescue", map[string]interface{}{"title": "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserRescuesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r1", "a@x.com"))
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r2", "b@x.com"))
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r3", "a@x.com"))

	rec := doJSON(t, r, http.MethodGet, "/get_user_rescues/a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rescues []models.Rescue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rescues))
	ids := make([]string, 0, len(rescues))
	for _, resc := range rescues {
		ids = append(ids, resc.RescueID)
	}
	assert.ElementsMatch(t, []string{"r1", "r3"}, ids)

	rec = doJSON(t, r, http.MethodGet, "/get_user_rescues/nobody@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestDeleteRescueEndpointIdempotent(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r1", "a@x.com"))

	rec := doJSON(t, r, http.MethodDelete, "/delete_rescue/r1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/delete_rescue/r1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadRescuePicEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/create_rescue", createRescueBody("r1", "a@x.com"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "box.jpg")
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload_rescue_pic/r1", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["file_url"], "rescues/")
	assert.Equal(t, resp["file_url"], st.rescues["r1"].Image)
}

func TestUploadRescuePicEndpointNoFile(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload_rescue_pic/r1", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
