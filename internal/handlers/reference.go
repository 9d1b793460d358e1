// internal/handlers/reference.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/i18n"
	"github.com/cappeLindo/webcars-api/internal/services"
	"github.com/cappeLindo/webcars-api/internal/utils"
)

// ReferenceHandler serves the simple name-only reference tables through
// one set of handlers; the kind is fixed when the route is registered.
type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

func NewReferenceHandler(referenceService *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

type referenceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// List returns a gin handler listing all rows of the given kind.
func (h *ReferenceHandler) List(kind services.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.referenceService.List(c.Request.Context(), kind)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.SuccessResponse(c, items)
	}
}

func (h *ReferenceHandler) Get(kind services.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		item, err := h.referenceService.Get(c.Request.Context(), kind, id)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.SuccessResponse(c, item)
	}
}

func (h *ReferenceHandler) Create(kind services.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req referenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "invalid request body", nil)
			return
		}
		item, err := h.referenceService.Create(c.Request.Context(), kind, req.Name)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.CreatedResponse(c, item)
	}
}

func (h *ReferenceHandler) Update(kind services.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		var req referenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "invalid request body", nil)
			return
		}
		item, err := h.referenceService.Update(c.Request.Context(), kind, id, req.Name)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.SuccessResponse(c, item)
	}
}

func (h *ReferenceHandler) Delete(kind services.ReferenceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		if err := h.referenceService.Delete(c.Request.Context(), kind, id); err != nil {
			utils.RespondError(c, err)
			return
		}
		lang := utils.GetLangFromContext(c)
		utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyReferenceDeleted)})
	}
}

// Car models carry a brand foreign key, so they get dedicated handlers.

type carModelRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	BrandID uint   `json:"brand_id" binding:"required"`
}

type carModelUpdateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// GET /car-models?brand_id=
func (h *ReferenceHandler) ListCarModels(c *gin.Context) {
	var brandID *uint
	if id, ok := queryUint(c, "brand_id"); ok {
		brandID = &id
	}

	carModels, err := h.referenceService.ListCarModels(c.Request.Context(), brandID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, carModels)
}

// GET /car-models/:id
func (h *ReferenceHandler) GetCarModel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	carModel, err := h.referenceService.GetCarModel(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, carModel)
}

// POST /car-models
func (h *ReferenceHandler) CreateCarModel(c *gin.Context) {
	var req carModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}
	carModel, err := h.referenceService.CreateCarModel(c.Request.Context(), req.Name, req.BrandID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, carModel)
}

// PUT /car-models/:id
func (h *ReferenceHandler) UpdateCarModel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req carModelUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}
	carModel, err := h.referenceService.UpdateCarModel(c.Request.Context(), id, req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, carModel)
}

// DELETE /car-models/:id
func (h *ReferenceHandler) DeleteCarModel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.referenceService.DeleteCarModel(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyReferenceDeleted)})
}
