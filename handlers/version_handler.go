package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kb-cms/helper"
	"kb-cms/models"
	"kb-cms/services"
)

type VersionHandler struct {
	lifecycleService services.VersionLifecycleService
	Helper           *helper.HTTPHelper
}

func NewVersionHandler(lifecycleService services.VersionLifecycleService, httpHelper *helper.HTTPHelper) *VersionHandler {
	return &VersionHandler{lifecycleService: lifecycleService, Helper: httpHelper}
}

func (h *VersionHandler) CreateDraft(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}

	draft, err := h.lifecycleService.CreateDraft(articleID, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Draft created successfully", draft)
}

func (h *VersionHandler) GetDraft(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}

	draft, err := h.lifecycleService.GetDraft(articleID, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", draft)
}

func (h *VersionHandler) UpdateDraft(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}
	number, ok := h.versionNumber(c)
	if !ok {
		return
	}

	var req models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	draft, err := h.lifecycleService.UpdateDraft(articleID, number, req, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Draft updated successfully", draft)
}

func (h *VersionHandler) PublishVersion(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}
	number, ok := h.versionNumber(c)
	if !ok {
		return
	}

	version, err := h.lifecycleService.Publish(articleID, number, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Version published successfully", version)
}

func (h *VersionHandler) RollbackVersion(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}
	number, ok := h.versionNumber(c)
	if !ok {
		return
	}

	version, err := h.lifecycleService.Rollback(articleID, number, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Rollback completed successfully", version)
}

func (h *VersionHandler) DiscardDraft(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}
	number, ok := h.versionNumber(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.DiscardDraft(articleID, number, currentRole(c)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Draft discarded successfully", h.Helper.EmptyJsonMap())
}

func (h *VersionHandler) GetVersions(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}

	versions, err := h.lifecycleService.ListVersions(articleID, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", versions)
}

func (h *VersionHandler) GetPublicVersions(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}

	versions, err := h.lifecycleService.ListPublicVersions(articleID)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", versions)
}

func (h *VersionHandler) GetVersion(c *gin.Context) {
	articleID, ok := h.articleID(c)
	if !ok {
		return
	}
	number, ok := h.versionNumber(c)
	if !ok {
		return
	}

	version, err := h.lifecycleService.GetVersion(articleID, number, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", version)
}

func (h *VersionHandler) articleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

func (h *VersionHandler) versionNumber(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		h.Helper.SendBadRequest(c, "Invalid version number", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return number, true
}
