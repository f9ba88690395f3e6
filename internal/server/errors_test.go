package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/estoque/internal/apperror"
	categorydomain "github.com/smallbiznis/estoque/internal/category/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryService struct {
	createErr error
	getErr    error
	deleteErr error
}

func (f *fakeCategoryService) Create(ctx context.Context, req categorydomain.CreateCategoryRequest) (categorydomain.CategoryResponse, error) {
	if f.createErr != nil {
		return categorydomain.CategoryResponse{}, f.createErr
	}
	return categorydomain.CategoryResponse{ID: "1", Name: req.Name}, nil
}

func (f *fakeCategoryService) Get(ctx context.Context, id int64) (categorydomain.CategoryResponse, error) {
	if f.getErr != nil {
		return categorydomain.CategoryResponse{}, f.getErr
	}
	return categorydomain.CategoryResponse{ID: "1"}, nil
}

func (f *fakeCategoryService) List(ctx context.Context, search string, page pagination.Pageable) (pagination.Page[categorydomain.CategoryResponse], error) {
	return pagination.Page[categorydomain.CategoryResponse]{Content: []categorydomain.CategoryResponse{}}, nil
}

func (f *fakeCategoryService) Update(ctx context.Context, id int64, req categorydomain.UpdateCategoryRequest) (categorydomain.CategoryResponse, error) {
	return categorydomain.CategoryResponse{ID: "1"}, nil
}

func (f *fakeCategoryService) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

func newTestRouter(fake *fakeCategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := &Server{engine: r, categorySvc: fake}
	s.registerAPIRoutes()
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateReturns201(t *testing.T) {
	r := newTestRouter(&fakeCategoryService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/categories", gin.H{"name": "Ferramentas"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestValidationErrorPayload(t *testing.T) {
	fake := &fakeCategoryService{}
	fake.createErr = apperror.NewValidation("name", "must not be blank")
	r := newTestRouter(fake)

	w := doRequest(t, r, http.MethodPost, "/api/v1/categories", gin.H{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Bad Request", resp.Error)
	require.Contains(t, resp.Errors, "name")
	assert.Equal(t, []string{"must not be blank"}, resp.Errors["name"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestNotFoundMapsTo404(t *testing.T) {
	fake := &fakeCategoryService{getErr: apperror.NewNotFound("category", 7)}
	r := newTestRouter(fake)

	w := doRequest(t, r, http.MethodGet, "/api/v1/categories/7", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeError(t, w)
	assert.Contains(t, resp.Message, "category with id 7")
	assert.Empty(t, resp.Errors)
}

func TestBusinessRuleMapsTo409(t *testing.T) {
	fake := &fakeCategoryService{
		deleteErr: apperror.NewBusinessRule("cannot delete category '%s': associated with %d product(s)", "Ferramentas", 3),
	}
	r := newTestRouter(fake)

	w := doRequest(t, r, http.MethodDelete, "/api/v1/categories/7", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	resp := decodeError(t, w)
	assert.Contains(t, resp.Message, "Ferramentas")
}

func TestDeleteReturns204(t *testing.T) {
	r := newTestRouter(&fakeCategoryService{})

	w := doRequest(t, r, http.MethodDelete, "/api/v1/categories/7", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBadPathIDReturns400(t *testing.T) {
	r := newTestRouter(&fakeCategoryService{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/categories/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Contains(t, resp.Errors, "id")
}

func TestMalformedBodyReturns400(t *testing.T) {
	r := newTestRouter(&fakeCategoryService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownErrorMapsTo500(t *testing.T) {
	fake := &fakeCategoryService{getErr: assert.AnError}
	r := newTestRouter(fake)

	w := doRequest(t, r, http.MethodGet, "/api/v1/categories/7", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "Internal Server Error", resp.Error)
}