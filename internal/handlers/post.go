package handlers

import (
	"net/http"

	"socialfeed/internal/presenter"
	"socialfeed/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	content   *services.ContentService
	formatter *presenter.Formatter
	maxUpload int64
}

func NewPostHandler(content *services.ContentService, formatter *presenter.Formatter, maxUpload int64) *PostHandler {
	return &PostHandler{content: content, formatter: formatter, maxUpload: maxUpload}
}

// Create handles POST /create (multipart, mandatory media).
func (h *PostHandler) Create(c *gin.Context) {
	var in services.CreatePostInput
	if !bind(c, &in) {
		return
	}
	upload, err := readUpload(c, "media", h.maxUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	in.Media = upload

	post, err := h.content.CreatePost(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Publicación creada exitosamente", gin.H{"post": post})
}

func (h *PostHandler) Comment(c *gin.Context) {
	var in services.CommentInput
	if !bind(c, &in) {
		return
	}
	comment, err := h.content.AddComment(c.Request.Context(), c.Param("postId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Comentario agregado exitosamente", gin.H{"comment": comment})
}

func (h *PostHandler) Reply(c *gin.Context) {
	var in services.CommentInput
	if !bind(c, &in) {
		return
	}
	reply, err := h.content.AddReply(c.Request.Context(), c.Param("commentId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Respuesta agregada exitosamente", gin.H{"reply": reply})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	likes, err := h.content.LikePost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Like agregado a la publicación", gin.H{"likes": likes})
}

func (h *PostHandler) LikeComment(c *gin.Context) {
	likes, err := h.content.LikeComment(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Like agregado al comentario", gin.H{"likes": likes})
}

func (h *PostHandler) ListAll(c *gin.Context) {
	feed, err := h.content.ListAllPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Publicaciones obtenidas exitosamente", gin.H{"posts": h.formatter.ShapeFeed(feed)})
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	feed, err := h.content.ListPostsByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Publicaciones del usuario obtenidas exitosamente", gin.H{"posts": h.formatter.ShapeFeed(feed)})
}
