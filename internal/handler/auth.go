package handler

import (
	"billtrack/internal/dto"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes login and token refresh.
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates username/password and returns a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

// Refresh exchanges a refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

// UsersHandler is the admin-only user management surface.
type UsersHandler struct {
	auth service.AuthService
}

func NewUsersHandler(auth service.AuthService) *UsersHandler {
	return &UsersHandler{auth: auth}
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.CreateUser(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *UsersHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	resp, err := h.auth.ListUsers(c.Request.Context(), companyID(c), includeInactive)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.UpdateUser(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *UsersHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.auth.DeactivateUser(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deactivated": true})
}

func (h *UsersHandler) Reactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.auth.ReactivateUser(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"reactivated": true})
}
