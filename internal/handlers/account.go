package handlers

import (
	"net/http"

	"socialfeed/internal/middleware"
	"socialfeed/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accounts  *services.AccountService
	maxUpload int64
}

func NewAccountHandler(accounts *services.AccountService, maxUpload int64) *AccountHandler {
	return &AccountHandler{accounts: accounts, maxUpload: maxUpload}
}

// Register handles POST /register (multipart, optional profileImage).
func (h *AccountHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !bind(c, &in) {
		return
	}
	upload, err := readUpload(c, "profileImage", h.maxUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	in.ProfileImage = upload

	user, err := h.accounts.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Usuario registrado exitosamente", gin.H{"user": user.WithoutPassword()})
}

// Update handles PUT /update/:id.
func (h *AccountHandler) Update(c *gin.Context) {
	var in services.UpdateInput
	if !bind(c, &in) {
		return
	}
	upload, err := readUpload(c, "profileImage", h.maxUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	in.ProfileImage = upload

	user, err := h.accounts.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Usuario actualizado exitosamente", gin.H{"user": user.WithoutPassword()})
}

// Login checks the credentials and starts a session.
func (h *AccountHandler) Login(c *gin.Context) {
	var in services.LoginInput
	if !bind(c, &in) {
		return
	}
	user, err := h.accounts.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Inicio de sesión exitoso", gin.H{"user": user})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Sesión cerrada exitosamente", nil)
}

// Me returns the session user.
func (h *AccountHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respond(c, http.StatusNotFound, "Usuario no encontrado", nil)
		return
	}
	respond(c, http.StatusOK, "Usuario obtenido exitosamente", gin.H{"user": user})
}
