package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"materials-and-more/libs"
	"materials-and-more/models"
	"materials-and-more/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type BannerController struct {
	db      models.Database
	storage libs.ObjectStorage
}

func NewBannerController(db models.Database, storage libs.ObjectStorage) *BannerController {
	return &BannerController{db: db, storage: storage}
}

// GetBanners godoc
// @Summary Get all banners
// @Tags Banners
// @Produce json
// @Success 200 {array} models.Banner
// @Router /banners [get]
func (ctrl *BannerController) GetBanners(c *gin.Context) {
	rows, err := ctrl.db.Query(c.Request.Context(),
		`SELECT id, title, COALESCE(image_url, ''), COALESCE(image_path, ''), created_at
		 FROM banners ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	defer rows.Close()

	banners := []models.Banner{}
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.ImagePath, &b.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
			return
		}
		banners = append(banners, b)
	}

	c.JSON(http.StatusOK, banners)
}

// CreateBanner godoc
// @Summary Create banner
// @Description Uploads a banner image keyed by its title; re-uploading the same title overwrites the stored object
// @Tags Banners
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Banner title"
// @Param image formData file true "Banner image"
// @Success 201 {object} models.Banner
// @Failure 400 {object} models.ErrorResponse
// @Router /banners [post]
func (ctrl *BannerController) CreateBanner(c *gin.Context) {
	title := c.PostForm("title")
	fileHeader, err := c.FormFile("image")
	if title == "" || err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Title and image required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read image"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()

	// Banner paths carry no timestamp, so the same title maps to the same
	// stored object and upload acts as an upsert.
	objectPath := fmt.Sprintf("banners/%s.webp", utils.SanitizeFilename(title))

	imageURL, storedPath, err := ctrl.storage.UploadImage(ctx, file, objectPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload image"})
		return
	}

	b := models.Banner{Title: title, ImageURL: imageURL, ImagePath: storedPath}
	err = ctrl.db.QueryRow(ctx,
		"INSERT INTO banners (title, image_url, image_path) VALUES ($1, $2, $3) RETURNING id, created_at",
		title, imageURL, storedPath).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, b)
}

// DeleteBanner godoc
// @Summary Delete banner
// @Tags Banners
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /banners/{id} [delete]
func (ctrl *BannerController) DeleteBanner(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var imageURL, imagePath string
	err := ctrl.db.QueryRow(ctx,
		"SELECT COALESCE(image_url, ''), COALESCE(image_path, '') FROM banners WHERE id=$1",
		id).Scan(&imageURL, &imagePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if imagePath == "" {
		imagePath = ctrl.storage.PathFromURL(imageURL)
	}
	if imagePath != "" {
		if err := ctrl.storage.Delete(ctx, imagePath); err != nil {
			log.Println("Warning: failed to delete banner image:", err)
		}
	}

	if _, err := ctrl.db.Exec(ctx, "DELETE FROM banners WHERE id=$1", id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Banner deleted successfully"})
}
