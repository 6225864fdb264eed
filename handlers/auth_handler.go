package handlers

import (
	"github.com/gin-gonic/gin"

	"kb-cms/helper"
	"kb-cms/models"
	"kb-cms/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, httpHelper *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: httpHelper}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendCreated(c, "Register success", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if fieldErrors := h.Helper.ValidateStruct(req); fieldErrors != nil {
		h.Helper.SendValidationError(c, fieldErrors)
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUserByID(currentUserID(c))
	if err != nil {
		h.Helper.SendErrorResponse(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}
