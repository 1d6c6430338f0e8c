package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"materials-and-more/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"gotest.tools/assert"
)

func TestGetBanners(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	ctrl := NewBannerController(mock, &fakeStorage{})

	mock.ExpectQuery("SELECT id, title").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "image_url", "image_path", "created_at"}).
			AddRow(1, "Summer Sale", "https://cdn.example.com/mm-files/banners/summer_sale.webp",
				"mm-files/banners/summer_sale", time.Now()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/banners", nil)
	ctrl.GetBanners(c)

	var banners []models.Banner
	err = json.NewDecoder(w.Body).Decode(&banners)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, len(banners))
	assert.Equal(t, "Summer Sale", banners[0].Title)

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestCreateBanner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	storage := &fakeStorage{}
	ctrl := NewBannerController(mock, storage)

	// missing title (400)
	body, contentType := multipartBody(nil, "image", "banner.png", []byte("png"))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/banners", body)
	c.Request.Header.Set("Content-Type", contentType)
	ctrl.CreateBanner(c)

	var errResp models.ErrorResponse
	err = json.NewDecoder(w.Body).Decode(&errResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and image required", errResp.Error)

	// created (201), path derived from the title alone so re-upload overwrites
	mock.ExpectQuery("INSERT INTO banners").
		WithArgs("Summer Sale!", "https://cdn.example.com/mm-files/banners/summer_sale_.webp",
			"mm-files/banners/summer_sale_").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	body, contentType = multipartBody(map[string]string{"title": "Summer Sale!"}, "image", "banner.png", []byte("png"))
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/banners", body)
	c.Request.Header.Set("Content-Type", contentType)
	ctrl.CreateBanner(c)

	var b models.Banner
	err = json.NewDecoder(w.Body).Decode(&b)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, "mm-files/banners/summer_sale_", b.ImagePath)

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestDeleteBanner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	storage := &fakeStorage{}
	ctrl := NewBannerController(mock, storage)

	// missing banner (404)
	mock.ExpectQuery("SELECT COALESCE\\(image_url").WithArgs("99").
		WillReturnError(pgx.ErrNoRows)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/banners/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	ctrl.DeleteBanner(c)

	var errResp models.ErrorResponse
	err = json.NewDecoder(w.Body).Decode(&errResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Banner not found", errResp.Error)

	// legacy record without image_path falls back to the URL (200)
	mock.ExpectQuery("SELECT COALESCE\\(image_url").WithArgs("1").
		WillReturnRows(pgxmock.NewRows([]string{"image_url", "image_path"}).
			AddRow("https://cdn.example.com/mm-files/banners/summer_sale.webp", ""))
	mock.ExpectExec("DELETE FROM banners").WithArgs("1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/banners/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ctrl.DeleteBanner(c)

	var resp models.MessageResponse
	err = json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Banner deleted successfully", resp.Message)
	assert.Equal(t, 1, len(storage.deleted))
	assert.Equal(t, "mm-files/banners/summer_sale", storage.deleted[0])

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}
