package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"materials-and-more/libs"
	"materials-and-more/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

type ProductController struct {
	db      models.Database
	storage libs.ObjectStorage
	cache   *redis.Client
}

func NewProductController(db models.Database, storage libs.ObjectStorage, cache *redis.Client) *ProductController {
	return &ProductController{db: db, storage: storage, cache: cache}
}

// productSelect joins each product to its category and that category's
// parent, so rows carry the subcategory (own category) and category (parent)
// display names.
const productSelect = `SELECT p.id, p.name, COALESCE(p.category_id, 0), COALESCE(p.description, ''),
	COALESCE(p.price, 0), COALESCE(p.image_url, ''), COALESCE(p.image_path, ''),
	COALESCE(p.specifications, '{}'), p.created_at, COALESCE(c.name, ''), COALESCE(pc.name, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN categories pc ON pc.id = c.parent_id`

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Description, &p.Price,
			&p.ImageURL, &p.ImagePath, &p.Specifications, &p.CreatedAt, &p.Subcategory, &p.Category); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// normalizeSpecifications accepts a JSON array of strings or a single
// comma-separated string and returns the trimmed sequence. Any other JSON
// type is rejected.
func normalizeSpecifications(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		specs := []string{}
		for _, part := range strings.Split(s, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				specs = append(specs, trimmed)
			}
		}
		return specs, nil
	}

	return nil, errors.New("Specifications must be an array or a comma-separated string")
}

func (ctrl *ProductController) invalidateProductCache(ctx context.Context) {
	if ctrl.cache == nil {
		return
	}
	iter := ctrl.cache.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		ctrl.cache.Del(ctx, iter.Val())
	}
}

// deleteStoredImage is the best-effort compensating action shared by the
// update and delete flows: a failure is logged, never surfaced.
func (ctrl *ProductController) deleteStoredImage(ctx context.Context, imagePath, imageURL string) {
	if imagePath == "" {
		imagePath = ctrl.storage.PathFromURL(imageURL)
	}
	if imagePath == "" {
		return
	}
	if err := ctrl.storage.Delete(ctx, imagePath); err != nil {
		log.Println("Warning: failed to delete image from storage:", err)
	}
}

// GetProducts godoc
// @Summary Get products
// @Description List products, optionally filtered by category (parent) and subcategory name
// @Tags Products
// @Produce json
// @Param category query string false "Parent category name"
// @Param subcategory query string false "Subcategory name"
// @Success 200 {array} models.Product
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	subcategory := strings.TrimSpace(c.Query("subcategory"))
	ctx := c.Request.Context()

	cacheKey := fmt.Sprintf("products_list_%s_%s", category, subcategory)
	if ctrl.cache != nil {
		if cached, err := ctrl.cache.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	query := productSelect
	args := []any{}
	conds := []string{}

	if category != "" {
		conds = append(conds, fmt.Sprintf("pc.name = $%d", len(args)+1))
		args = append(args, category)
	}
	if subcategory != "" {
		conds = append(conds, fmt.Sprintf("c.name = $%d", len(args)+1))
		args = append(args, subcategory)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := ctrl.db.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if ctrl.cache != nil {
		if jsonData, err := json.Marshal(products); err == nil {
			ctrl.cache.Set(ctx, cacheKey, jsonData, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, products)
}

// GetRelatedProducts godoc
// @Summary Get related products
// @Description Products in the same subcategory and in sibling subcategories under the same parent
// @Tags Products
// @Produce json
// @Param excludeId query int true "Product ID to exclude"
// @Param subcategoryId query int true "Subcategory ID"
// @Success 200 {object} models.RelatedProductsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products/related [get]
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	excludeID, err1 := strconv.Atoi(c.Query("excludeId"))
	subcategoryID, err2 := strconv.Atoi(c.Query("subcategoryId"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing required fields"})
		return
	}
	ctx := c.Request.Context()

	var sub models.Category
	err := ctrl.db.QueryRow(ctx,
		"SELECT id, name, parent_id FROM categories WHERE id=$1",
		subcategoryID).Scan(&sub.ID, &sub.Name, &sub.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Subcategory not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Could not fetch subcategory data"})
		return
	}

	if sub.ParentID == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "This subcategory has no parent category"})
		return
	}

	var parentName string
	err = ctrl.db.QueryRow(ctx,
		"SELECT name FROM categories WHERE id=$1", *sub.ParentID).Scan(&parentName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Could not fetch parent category data"})
		return
	}

	rows, err := ctrl.db.Query(ctx,
		productSelect+" WHERE p.category_id = $1 AND p.id <> $2",
		subcategoryID, excludeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Could not fetch subcategory related products"})
		return
	}
	subRelated, err := scanProducts(rows)
	rows.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	rows, err = ctrl.db.Query(ctx,
		productSelect+" WHERE c.parent_id = $1 AND p.category_id <> $2 AND p.id <> $3",
		*sub.ParentID, subcategoryID, excludeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Could not fetch category related products"})
		return
	}
	catRelated, err := scanProducts(rows)
	rows.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.RelatedProductsResponse{
		SubcategoryRelated: subRelated,
		CategoryRelated:    catRelated,
		SubcategoryName:    sub.Name,
		CategoryName:       parentName,
	})
}

// GetProductByID godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	rows, err := ctrl.db.Query(c.Request.Context(), productSelect+" WHERE p.id = $1", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Product not found"})
		return
	}

	c.JSON(http.StatusOK, products[0])
}

// CreateProduct godoc
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.ProductRequest true "Product"
// @Success 201 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	specs, err := normalizeSpecifications(req.Specifications)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	p := models.Product{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		ImagePath:      req.ImagePath,
		Specifications: specs,
	}

	err = ctrl.db.QueryRow(c.Request.Context(),
		`INSERT INTO products (name, category_id, description, price, image_url, image_path, specifications)
		 VALUES ($1, NULLIF($2, 0), $3, $4, $5, $6, $7) RETURNING id, created_at`,
		req.Name, req.CategoryID, req.Description, req.Price, req.ImageURL, req.ImagePath, specs,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctrl.invalidateProductCache(c.Request.Context())

	c.JSON(http.StatusCreated, p)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Updates a product; replacing the image deletes the old stored object best-effort
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.ProductRequest true "Product"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	specs, err := normalizeSpecifications(req.Specifications)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	var oldImageURL, oldImagePath string
	err = ctrl.db.QueryRow(ctx,
		"SELECT COALESCE(image_url, ''), COALESCE(image_path, '') FROM products WHERE id=$1",
		id).Scan(&oldImageURL, &oldImagePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if req.ImageURL != "" && oldImageURL != "" && req.ImageURL != oldImageURL {
		ctrl.deleteStoredImage(ctx, oldImagePath, oldImageURL)
	}

	_, err = ctrl.db.Exec(ctx,
		`UPDATE products SET name=$1, category_id=NULLIF($2, 0), description=$3, price=$4,
		 image_url=$5, image_path=$6, specifications=$7 WHERE id=$8`,
		req.Name, req.CategoryID, req.Description, req.Price, req.ImageURL, req.ImagePath, specs, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctrl.invalidateProductCache(ctx)

	c.JSON(http.StatusOK, models.Product{
		ID:             id,
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		ImagePath:      req.ImagePath,
		Specifications: specs,
	})
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Deletes the record, then best-effort deletes the stored image
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var imageURL, imagePath string
	err := ctrl.db.QueryRow(ctx,
		"SELECT COALESCE(image_url, ''), COALESCE(image_path, '') FROM products WHERE id=$1",
		id).Scan(&imageURL, &imagePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := ctrl.db.Exec(ctx, "DELETE FROM products WHERE id=$1", id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if imageURL != "" || imagePath != "" {
		ctrl.deleteStoredImage(ctx, imagePath, imageURL)
	}

	ctrl.invalidateProductCache(ctx)

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Product and image deleted successfully"})
}

// DeleteImage godoc
// @Summary Delete a stored image by path
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.DeleteImageRequest true "Stored path"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products/delete-image [post]
func (ctrl *ProductController) DeleteImage(c *gin.Context) {
	var req models.DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image path is required"})
		return
	}

	if err := ctrl.storage.Delete(c.Request.Context(), req.Path); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Old image deleted"})
}
