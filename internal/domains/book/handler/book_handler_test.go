package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookmanager/internal/domains/book/model"
	"bookmanager/internal/domains/book/service/mocks"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func setup(t *testing.T) (*mocks.MockServiceInterface, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := mocks.NewMockServiceInterface(gomock.NewController(t))
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/books", h.CreateBook)
	r.PUT("/books/:id", h.UpdateBook)
	r.GET("/authors/:id/books", h.ListByAuthor)
	return svc, r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCreateBook_Returns201(t *testing.T) {
	svc, r := setup(t)

	in := model.BookInput{Title: "Go in Action", Price: 1500, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{1, 2}}
	svc.EXPECT().CreateBook(gomock.Any(), in).
		Return(model.Book{ID: 7, Title: in.Title, Price: in.Price, PublishedStatus: in.PublishedStatus, AuthorIDs: in.AuthorIDs}, nil)

	w, env := do(t, r, http.MethodPost, "/books",
		`{"title":" Go in Action ","price":1500,"published_status":"PUBLISHED","author_ids":[1,2]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t,
		`{"id":7,"title":"Go in Action","price":1500,"published_status":"PUBLISHED","author_ids":[1,2]}`,
		string(env.Data))
}

func TestCreateBook_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"blank title", `{"title":"  ","price":1,"published_status":"PUBLISHED","author_ids":[1]}`, "title"},
		{"missing price", `{"title":"T","published_status":"PUBLISHED","author_ids":[1]}`, "price"},
		{"negative price", `{"title":"T","price":-1,"published_status":"PUBLISHED","author_ids":[1]}`, "price"},
		{"unknown status", `{"title":"T","price":1,"published_status":"DRAFT","author_ids":[1]}`, "published_status"},
		{"no authors", `{"title":"T","price":1,"published_status":"PUBLISHED","author_ids":[]}`, "author_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := setup(t)
			svc.EXPECT().CreateBook(gomock.Any(), gomock.Any()).Times(0)

			w, env := do(t, r, http.MethodPost, "/books", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
			assert.Contains(t, env.Error.Details, tt.field)
		})
	}
}

func TestCreateBook_MissingAuthorIs400(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().CreateBook(gomock.Any(), gomock.Any()).Return(model.Book{}, model.MissingAuthors([]int64{99}))

	w, env := do(t, r, http.MethodPost, "/books", `{"title":"T","price":0,"published_status":"UNPUBLISHED","author_ids":[1,99]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND_OR_INVALID", env.Error.Code)
	assert.Equal(t, "author does not exist: id=[99]", env.Error.Details["author_ids"])
}

func TestCreateBook_MalformedBody(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().CreateBook(gomock.Any(), gomock.Any()).Times(0)

	w, env := do(t, r, http.MethodPost, "/books", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestUpdateBook_UnpublishIs400(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().UpdateBook(gomock.Any(), int64(5), gomock.Any()).Return(model.Book{}, model.UnpublishForbidden())

	w, env := do(t, r, http.MethodPut, "/books/5", `{"title":"T","price":1,"published_status":"UNPUBLISHED","author_ids":[1]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ILLEGAL_TRANSITION", env.Error.Code)
	assert.Contains(t, env.Error.Details, "published_status")
}

func TestUpdateBook_Success(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().UpdateBook(gomock.Any(), int64(5), model.BookInput{
		Title: "T", Price: 1, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{2},
	}).Return(model.Book{ID: 5, Title: "T", Price: 1, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{2}}, nil)

	w, env := do(t, r, http.MethodPut, "/books/5", `{"title":"T","price":1,"published_status":"PUBLISHED","author_ids":[2]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestUpdateBook_BadID(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().UpdateBook(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w, _ := do(t, r, http.MethodPut, "/books/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListByAuthor_EmptyIsArray(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().ListByAuthor(gomock.Any(), int64(404)).Return([]model.Book{}, nil)

	w, env := do(t, r, http.MethodGet, "/authors/404/books", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestListByAuthor_StoreFailureIs500(t *testing.T) {
	svc, r := setup(t)
	svc.EXPECT().ListByAuthor(gomock.Any(), int64(1)).Return(nil, errors.New("pool closed"))

	w, env := do(t, r, http.MethodGet, "/authors/1/books", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "pool closed")
}
