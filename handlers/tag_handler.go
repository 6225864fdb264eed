package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kb-cms/helper"
	"kb-cms/models"
	"kb-cms/services"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, httpHelper *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: httpHelper}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	tag, err := h.tagService.CreateTag(req, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Tag created successfully", tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid tag ID", h.Helper.EmptyJsonMap())
		return
	}

	tag, err := h.tagService.GetTag(uint(id))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tag)
}
