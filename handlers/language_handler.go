package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kb-cms/helper"
	"kb-cms/models"
	"kb-cms/services"
)

type LanguageHandler struct {
	languageService services.LanguageService
	Helper          *helper.HTTPHelper
}

func NewLanguageHandler(languageService services.LanguageService, httpHelper *helper.HTTPHelper) *LanguageHandler {
	return &LanguageHandler{languageService: languageService, Helper: httpHelper}
}

// GetLanguages lists the active languages for the public picker.
func (h *LanguageHandler) GetLanguages(c *gin.Context) {
	languages, err := h.languageService.GetLanguages(false)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", languages)
}

// GetAllLanguages lists languages for authenticated callers, including
// inactive ones when include_inactive=true.
func (h *LanguageHandler) GetAllLanguages(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	languages, err := h.languageService.GetLanguages(includeInactive)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", languages)
}

func (h *LanguageHandler) GetLanguage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid language ID", h.Helper.EmptyJsonMap())
		return
	}

	language, err := h.languageService.GetLanguage(uint(id))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", language)
}

func (h *LanguageHandler) CreateLanguage(c *gin.Context) {
	var req models.CreateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	language, err := h.languageService.CreateLanguage(req, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Language created successfully", language)
}

func (h *LanguageHandler) UpdateLanguage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid language ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	language, err := h.languageService.UpdateLanguage(uint(id), req, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Language updated successfully", language)
}

func (h *LanguageHandler) DeleteLanguage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid language ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.languageService.DeleteLanguage(uint(id), currentRole(c)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Language deleted successfully", h.Helper.EmptyJsonMap())
}
