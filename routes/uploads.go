package routes

import (
	"errors"
	"net/http"

	"github.com/NguyenHongSon4/app-02/services"
	"github.com/gin-gonic/gin"
)

// ImageField is the multipart form field holding the uploaded file.
const ImageField = "image"

func RegisterUploadRoutes(group *gin.RouterGroup, uploadService services.UploadServiceInterface) {
	group.POST("/upload", func(c *gin.Context) { UploadImage(c, uploadService) })
}

func UploadImage(c *gin.Context, uploadService services.UploadServiceInterface) {
	file, err := c.FormFile(ImageField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image upload failed"})
		return
	}

	imagePath, err := uploadService.SaveImage(file)
	if err != nil {
		if errors.Is(err, services.ErrNoFile) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image upload failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imagePath": imagePath})
}
