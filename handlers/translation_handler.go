package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kb-cms/helper"
	"kb-cms/models"
	"kb-cms/services"
)

type TranslationHandler struct {
	translationService services.TranslationService
	Helper             *helper.HTTPHelper
}

func NewTranslationHandler(translationService services.TranslationService, httpHelper *helper.HTTPHelper) *TranslationHandler {
	return &TranslationHandler{translationService: translationService, Helper: httpHelper}
}

func (h *TranslationHandler) AttachTranslation(c *gin.Context) {
	var req models.AttachTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	membership, err := h.translationService.Attach(req, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Translation attached successfully", membership)
}

func (h *TranslationHandler) DetachTranslation(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.translationService.Detach(uint(articleID), currentRole(c)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Translation detached successfully", h.Helper.EmptyJsonMap())
}

func (h *TranslationHandler) GetTranslations(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	siblings, err := h.translationService.ListSiblings(uint(articleID))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", siblings)
}
