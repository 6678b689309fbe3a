package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func uploadContext(t *testing.T, filename, contentType string, data []byte) *gin.Context {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="media"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/create", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c
}

func TestReadUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	u, err := readUpload(uploadContext(t, "clip.mp4", "video/mp4", []byte("data")), "media", 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", u.Filename)
	assert.Equal(t, "video/mp4", u.ContentType)

	u, err = readUpload(uploadContext(t, "foto", "application/octet-stream", pngHeader), "media", 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "image/png", u.ContentType)
	assert.Equal(t, "foto.png", u.Filename)

	_, err = readUpload(uploadContext(t, "big.png", "image/png", make([]byte, 2048)), "media", 1024)
	var tooLarge *UploadTooLargeError
	assert.ErrorAs(t, err, &tooLarge)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/create", nil)
	u, err = readUpload(c, "media", 1024)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Error del servidor"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)
}
