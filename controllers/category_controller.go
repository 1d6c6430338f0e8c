package controllers

import (
	"errors"
	"net/http"
	"strings"

	"materials-and-more/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type CategoryController struct {
	db models.Database
}

func NewCategoryController(db models.Database) *CategoryController {
	return &CategoryController{db: db}
}

// GetCategories godoc
// @Summary Get all categories
// @Description List categories ordered by parent_id (top-level first) then name
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	rows, err := ctrl.db.Query(c.Request.Context(),
		"SELECT id, name, parent_id, created_at FROM categories ORDER BY parent_id ASC NULLS FIRST, name ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ParentID, &cat.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID godoc
// @Summary Get category by ID
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	id := c.Param("id")

	var cat models.Category
	err := ctrl.db.QueryRow(c.Request.Context(),
		"SELECT id, name, parent_id, created_at FROM categories WHERE id=$1",
		id).Scan(&cat.ID, &cat.Name, &cat.ParentID, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, cat)
}

// CreateCategory godoc
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	_ = c.ShouldBindJSON(&req)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Name is required"})
		return
	}

	cat := models.Category{Name: name, ParentID: req.ParentID}
	err := ctrl.db.QueryRow(c.Request.Context(),
		"INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id, created_at",
		name, req.ParentID).Scan(&cat.ID, &cat.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory godoc
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var req models.CategoryRequest
	_ = c.ShouldBindJSON(&req)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Name is required"})
		return
	}

	tag, err := ctrl.db.Exec(c.Request.Context(),
		"UPDATE categories SET name=$1, parent_id=COALESCE($2, parent_id) WHERE id=$3",
		name, req.ParentID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Category not found"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Category updated successfully"})
}

// DeleteCategory godoc
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	tag, err := ctrl.db.Exec(c.Request.Context(), "DELETE FROM categories WHERE id=$1", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Category not found"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Category deleted successfully"})
}
