package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"materials-and-more/libs"
	"materials-and-more/models"
	"materials-and-more/utils"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage libs.ObjectStorage
}

func NewUploadController(storage libs.ObjectStorage) *UploadController {
	return &UploadController{storage: storage}
}

// UploadFile godoc
// @Summary Upload a file
// @Description Stores a file as-is under uploads/, without re-encoding
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /upload [post]
func (ctrl *UploadController) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read file"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	base := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	objectPath := "uploads/" + utils.SanitizeFilename(base) + ext

	publicURL, storedPath, err := ctrl.storage.UploadFile(c.Request.Context(), file, objectPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		Message:   "File uploaded successfully!",
		Path:      storedPath,
		PublicURL: publicURL,
	})
}
