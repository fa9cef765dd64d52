package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmanager/internal/domains/book/model"
	service "bookmanager/internal/domains/book/service"
	"bookmanager/internal/shared/response"
	"bookmanager/internal/shared/utils"
)

// Handler - HTTP handler for books
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateBook - POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	in, ok := bindBook(c)
	if !ok {
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), in)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// UpdateBook - PUT /api/v1/books/:id
// Full replace: every field, including the author set, is overwritten.
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	in, ok := bindBook(c)
	if !ok {
		return
	}

	updated, err := h.service.UpdateBook(c.Request.Context(), id, in)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

// ListByAuthor - GET /api/v1/authors/:id/books
func (h *Handler) ListByAuthor(c *gin.Context) {
	authorID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, err := h.service.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(books))
}

// bindBook writes the error response itself and reports false on failure.
func bindBook(c *gin.Context) (model.BookInput, bool) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return model.BookInput{}, false
	}

	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return model.BookInput{}, false
	}

	return req.ToInput(), true
}
