package routes

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NguyenHongSon4/app-02/services"
	"github.com/NguyenHongSon4/app-02/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func setupUploadRouter(uploadService services.UploadServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	RegisterUploadRoutes(router.Group("/api"), uploadService)
	return router
}

func TestUploadImage(t *testing.T) {
	uploadService := new(testutils.MockUploadService)
	uploadService.On("SaveImage", mock.MatchedBy(func(fh *multipart.FileHeader) bool {
		return fh.Filename == "photo.png"
	})).Return("/uploads/1700000000000.png", nil)

	router := setupUploadRouter(uploadService)
	body, contentType := multipartBody(t, ImageField, "photo.png", []byte("png"))
	req, _ := http.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imagePath":"/uploads/1700000000000.png"}`, w.Body.String())
}

func TestUploadImageWithoutFile(t *testing.T) {
	uploadService := new(testutils.MockUploadService)
	router := setupUploadRouter(uploadService)

	body, contentType := multipartBody(t, "document", "photo.png", []byte("png"))
	req, _ := http.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Image upload failed"}`, w.Body.String())
	uploadService.AssertNotCalled(t, "SaveImage", mock.Anything)
}

func TestUploadImageStorageFailure(t *testing.T) {
	uploadService := new(testutils.MockUploadService)
	uploadService.On("SaveImage", mock.Anything).Return("", assert.AnError)

	router := setupUploadRouter(uploadService)
	body, contentType := multipartBody(t, ImageField, "photo.png", []byte("png"))
	req, _ := http.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
