package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"materials-and-more/libs"
	"materials-and-more/models"
	"materials-and-more/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// maxPartnerImageSize caps partner logo uploads at 20KB.
const maxPartnerImageSize = 20 * 1024

type PartnerController struct {
	db      models.Database
	storage libs.ObjectStorage
}

func NewPartnerController(db models.Database, storage libs.ObjectStorage) *PartnerController {
	return &PartnerController{db: db, storage: storage}
}

// GetPartners godoc
// @Summary Get all partners
// @Tags Partners
// @Produce json
// @Success 200 {array} models.Partner
// @Router /partners [get]
func (ctrl *PartnerController) GetPartners(c *gin.Context) {
	rows, err := ctrl.db.Query(c.Request.Context(),
		`SELECT id, title, COALESCE(website, ''), COALESCE(image_url, ''), COALESCE(image_path, ''), created_at
		 FROM partners ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	defer rows.Close()

	partners := []models.Partner{}
	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(&p.ID, &p.Title, &p.Website, &p.ImageURL, &p.ImagePath, &p.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
			return
		}
		partners = append(partners, p)
	}

	c.JSON(http.StatusOK, partners)
}

// CreatePartner godoc
// @Summary Create partner
// @Description Creates a partner with a logo image, re-encoded to webp on upload
// @Tags Partners
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Partner title"
// @Param website formData string true "Partner website"
// @Param image formData file true "Logo image (max 20KB)"
// @Success 201 {object} models.Partner
// @Failure 400 {object} models.ErrorResponse
// @Router /partners [post]
func (ctrl *PartnerController) CreatePartner(c *gin.Context) {
	title := c.PostForm("title")
	website := c.PostForm("website")
	fileHeader, err := c.FormFile("image")
	if title == "" || website == "" || err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Title, website and image are required"})
		return
	}

	if fileHeader.Size > maxPartnerImageSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image size must be under 20KB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read image"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	objectPath := fmt.Sprintf("partners/%s_%d.webp", utils.SanitizeFilename(title), time.Now().UnixMilli())

	imageURL, storedPath, err := ctrl.storage.UploadImage(ctx, file, objectPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload image"})
		return
	}

	p := models.Partner{Title: title, Website: website, ImageURL: imageURL, ImagePath: storedPath}
	err = ctrl.db.QueryRow(ctx,
		`INSERT INTO partners (title, website, image_url, image_path)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		title, website, imageURL, storedPath).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		// The record never existed, so the uploaded object is orphaned.
		go func(path string) {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := ctrl.storage.Delete(cleanupCtx, path); err != nil {
				log.Println("Warning: failed to clean up orphaned partner image:", err)
			}
		}(storedPath)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// UpdatePartner godoc
// @Summary Update partner
// @Description Updates partner fields; a new image replaces and deletes the old stored object
// @Tags Partners
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Partner ID"
// @Param title formData string false "Partner title"
// @Param website formData string false "Partner website"
// @Param image formData file false "Logo image (max 20KB)"
// @Success 200 {object} models.Partner
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /partners/{id} [put]
func (ctrl *PartnerController) UpdatePartner(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var p models.Partner
	err := ctrl.db.QueryRow(ctx,
		`SELECT id, title, COALESCE(website, ''), COALESCE(image_url, ''), COALESCE(image_path, ''), created_at
		 FROM partners WHERE id=$1`,
		id).Scan(&p.ID, &p.Title, &p.Website, &p.ImageURL, &p.ImagePath, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Partner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	p.Title = c.DefaultPostForm("title", p.Title)
	p.Website = c.DefaultPostForm("website", p.Website)

	if fileHeader, err := c.FormFile("image"); err == nil {
		if fileHeader.Size > maxPartnerImageSize {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image size must be under 20KB"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read image"})
			return
		}
		defer file.Close()

		oldPath := p.ImagePath
		if oldPath == "" {
			oldPath = ctrl.storage.PathFromURL(p.ImageURL)
		}

		objectPath := fmt.Sprintf("partners/%s_%d.webp", utils.SanitizeFilename(p.Title), time.Now().UnixMilli())
		imageURL, storedPath, err := ctrl.storage.UploadImage(ctx, file, objectPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload image"})
			return
		}
		p.ImageURL = imageURL
		p.ImagePath = storedPath

		if oldPath != "" {
			if err := ctrl.storage.Delete(ctx, oldPath); err != nil {
				log.Println("Warning: failed to delete old partner image:", err)
			}
		}
	}

	_, err = ctrl.db.Exec(ctx,
		"UPDATE partners SET title=$1, website=$2, image_url=$3, image_path=$4 WHERE id=$5",
		p.Title, p.Website, p.ImageURL, p.ImagePath, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeletePartner godoc
// @Summary Delete partner
// @Tags Partners
// @Produce json
// @Param id path int true "Partner ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /partners/{id} [delete]
func (ctrl *PartnerController) DeletePartner(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var imageURL, imagePath string
	err := ctrl.db.QueryRow(ctx,
		"SELECT COALESCE(image_url, ''), COALESCE(image_path, '') FROM partners WHERE id=$1",
		id).Scan(&imageURL, &imagePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Partner not found"})
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
			log.Println("Warning: failed to delete partner image:", err)
		}
	}

	if _, err := ctrl.db.Exec(ctx, "DELETE FROM partners WHERE id=$1", id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Partner deleted successfully"})
}
