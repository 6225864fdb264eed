package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kb-cms/helper"
	"kb-cms/models"
	"kb-cms/services"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, httpHelper *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: httpHelper}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	article, err := h.articleService.CreateArticle(req, currentUserID(c), currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Article created successfully", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	article, err := h.articleService.UpdateArticle(uint(id), req, currentRole(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated successfully", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.articleService.DeleteArticle(uint(id), currentRole(c)); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	articles, total, err := h.articleService.GetArticles(params, false)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles":   articles,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetPublicArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	articles, total, err := h.articleService.GetArticles(params, true)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles":   articles,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.GetArticle(uint(id), false)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) GetPublicArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.GetArticle(uint(id), true)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) MarkHelpful(c *gin.Context) {
	h.submitFeedback(c, true)
}

func (h *ArticleHandler) MarkUnhelpful(c *gin.Context) {
	h.submitFeedback(c, false)
}

func (h *ArticleHandler) submitFeedback(c *gin.Context, helpful bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.articleService.SubmitFeedback(uint(id), helpful); err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Feedback recorded", h.Helper.EmptyJsonMap())
}
