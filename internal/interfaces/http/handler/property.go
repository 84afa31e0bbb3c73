package handler

import (
	propertyapp "github.com/attcrm/backend/internal/application/property"
	"github.com/gin-gonic/gin"
)

// PropertyHandler exposes the property service over HTTP
type PropertyHandler struct {
	BaseHandler
	service *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(service *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

type propertyURI struct {
	ID string `uri:"id" binding:"required,max=64"`
}

type unitURI struct {
	ID     string `uri:"id" binding:"required,max=64"`
	UnitID string `uri:"unitId" binding:"required,max=64"`
}

// List handles GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, properties)
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyapp.CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Get handles GET /api/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	var uri propertyURI
	if !h.BindURI(c, &uri) {
		return
	}

	p, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete handles DELETE /api/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	var uri propertyURI
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePhase handles POST /api/properties/:id/phases
func (h *PropertyHandler) CreatePhase(c *gin.Context) {
	var uri propertyURI
	if !h.BindURI(c, &uri) {
		return
	}
	var req propertyapp.CreatePhaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.CreatePhase(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// AddUnit handles POST /api/properties/:id/units
func (h *PropertyHandler) AddUnit(c *gin.Context) {
	var uri propertyURI
	if !h.BindURI(c, &uri) {
		return
	}
	var req propertyapp.AddUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.AddUnit(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetUnit handles GET /api/properties/:id/units/:unitId
func (h *PropertyHandler) GetUnit(c *gin.Context) {
	var uri unitURI
	if !h.BindURI(c, &uri) {
		return
	}

	result, err := h.service.GetUnit(c.Request.Context(), uri.ID, uri.UnitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateUnit handles PATCH /api/properties/:id/units/:unitId
func (h *PropertyHandler) UpdateUnit(c *gin.Context) {
	var uri unitURI
	if !h.BindURI(c, &uri) {
		return
	}
	var req propertyapp.UpdateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.UpdateUnit(c.Request.Context(), uri.ID, uri.UnitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteUnit handles DELETE /api/properties/:id/units/:unitId
func (h *PropertyHandler) DeleteUnit(c *gin.Context) {
	var uri unitURI
	if !h.BindURI(c, &uri) {
		return
	}

	result, err := h.service.DeleteUnit(c.Request.Context(), uri.ID, uri.UnitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AddMilestone handles POST /api/properties/:id/units/:unitId/milestones
func (h *PropertyHandler) AddMilestone(c *gin.Context) {
	var uri unitURI
	if !h.BindURI(c, &uri) {
		return
	}
	var req propertyapp.AddMilestoneRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.AddMilestone(c.Request.Context(), uri.ID, uri.UnitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// UpdateMilestone handles PATCH /api/properties/:id/units/:unitId/milestones
func (h *PropertyHandler) UpdateMilestone(c *gin.Context) {
	var uri unitURI
	if !h.BindURI(c, &uri) {
		return
	}
	var req propertyapp.UpdateMilestoneRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.UpdateMilestone(c.Request.Context(), uri.ID, uri.UnitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
