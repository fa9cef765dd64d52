package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmanager/internal/domains/author"
	"bookmanager/internal/shared/response"
	"bookmanager/internal/shared/utils"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	name, birthdate := req.Normalized()
	created, err := h.service.Create(c.Request.Context(), name, birthdate)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req author.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	name, birthdate := req.Normalized()
	updated, err := h.service.Update(c.Request.Context(), id, name, birthdate)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}
