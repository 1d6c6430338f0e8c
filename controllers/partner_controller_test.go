package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"materials-and-more/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"gotest.tools/assert"
)

func TestGetPartners(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	ctrl := NewPartnerController(mock, &fakeStorage{})

	mock.ExpectQuery("SELECT id, title").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "website", "image_url", "image_path", "created_at"}).
			AddRow(1, "Acme Tools", "https://acme.example.com",
				"https://cdn.example.com/mm-files/partners/acme.webp", "mm-files/partners/acme", time.Now()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/partners", nil)
	ctrl.GetPartners(c)

	var partners []models.Partner
	err = json.NewDecoder(w.Body).Decode(&partners)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, len(partners))
	assert.Equal(t, "Acme Tools", partners[0].Title)

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestCreatePartner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	storage := &fakeStorage{}
	ctrl := NewPartnerController(mock, storage)
	var errResp models.ErrorResponse

	// missing image (400)
	body, contentType := multipartBody(map[string]string{
		"title": "Acme Tools", "website": "https://acme.example.com",
	}, "", "", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/partners", body)
	c.Request.Header.Set("Content-Type", contentType)
	ctrl.CreatePartner(c)

	err = json.NewDecoder(w.Body).Decode(&errResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title, website and image are required", errResp.Error)

	// image over 20KB (400)
	body, contentType = multipartBody(map[string]string{
		"title": "Acme Tools", "website": "https://acme.example.com",
	}, "image", "logo.png", bytes.Repeat([]byte("x"), 21*1024))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/partners", body)
	c.Request.Header.Set("Content-Type", contentType)
	ctrl.CreatePartner(c)

	err = json.NewDecoder(w.Body).Decode(&errResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image size must be under 20KB", errResp.Error)

	// created (201), stored under a sanitized timestamped path
	mock.ExpectQuery("INSERT INTO partners").
		WithArgs("Acme Tools", "https://acme.example.com", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	body, contentType = multipartBody(map[string]string{
		"title": "Acme Tools", "website": "https://acme.example.com",
	}, "image", "logo.png", []byte("png-bytes"))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/partners", body)
	c.Request.Header.Set("Content-Type", contentType)
	ctrl.CreatePartner(c)

	var p models.Partner
	err = json.NewDecoder(w.Body).Decode(&p)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, 1, len(storage.uploaded))
	assert.Equal(t, true, strings.HasPrefix(storage.uploaded[0], "mm-files/partners/acme_tools_"))

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestUpdatePartner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	storage := &fakeStorage{}
	ctrl := NewPartnerController(mock, storage)

	// missing partner (404)
	mock.ExpectQuery("SELECT id, title").WithArgs("99").
		WillReturnError(pgx.ErrNoRows)

	body, contentType := multipartBody(map[string]string{"title": "Acme"}, "", "", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/partners/99", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	ctrl.UpdatePartner(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// title-only update keeps the existing image (200)
	mock.ExpectQuery("SELECT id, title").WithArgs("1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "website", "image_url", "image_path", "created_at"}).
			AddRow(1, "Acme Tools", "https://acme.example.com",
				"https://cdn.example.com/mm-files/partners/acme.webp", "mm-files/partners/acme", time.Now()))
	mock.ExpectExec("UPDATE partners").
		WithArgs("Acme Hardware", "https://acme.example.com",
			"https://cdn.example.com/mm-files/partners/acme.webp", "mm-files/partners/acme", "1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body, contentType = multipartBody(map[string]string{"title": "Acme Hardware"}, "", "", nil)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/partners/1", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ctrl.UpdatePartner(c)

	var p models.Partner
	err = json.NewDecoder(w.Body).Decode(&p)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Hardware", p.Title)
	assert.Equal(t, 0, len(storage.deleted))

	// new image replaces and deletes the old one (200)
	mock.ExpectQuery("SELECT id, title").WithArgs("1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "website", "image_url", "image_path", "created_at"}).
			AddRow(1, "Acme Tools", "https://acme.example.com",
				"https://cdn.example.com/mm-files/partners/acme.webp", "mm-files/partners/acme", time.Now()))
	mock.ExpectExec("UPDATE partners").
		WithArgs("Acme Tools", "https://acme.example.com", pgxmock.AnyArg(), pgxmock.AnyArg(), "1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body, contentType = multipartBody(nil, "image", "logo.png", []byte("new-png"))
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/partners/1", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ctrl.UpdatePartner(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, len(storage.deleted))
	assert.Equal(t, "mm-files/partners/acme", storage.deleted[0])

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestDeletePartner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.Equal(t, nil, err)
	defer mock.Close()

	// storage failure never blocks record deletion
	storage := &fakeStorage{deleteErr: errBoom}
	ctrl := NewPartnerController(mock, storage)

	// missing partner (404)
	mock.ExpectQuery("SELECT COALESCE\\(image_url").WithArgs("99").
		WillReturnError(pgx.ErrNoRows)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/partners/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	ctrl.DeletePartner(c)

	var errResp models.ErrorResponse
	err = json.NewDecoder(w.Body).Decode(&errResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Partner not found", errResp.Error)

	// deleted despite storage error (200)
	mock.ExpectQuery("SELECT COALESCE\\(image_url").WithArgs("1").
		WillReturnRows(pgxmock.NewRows([]string{"image_url", "image_path"}).
			AddRow("https://cdn.example.com/mm-files/partners/acme.webp", "mm-files/partners/acme"))
	mock.ExpectExec("DELETE FROM partners").WithArgs("1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/partners/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ctrl.DeletePartner(c)

	var resp models.MessageResponse
	err = json.NewDecoder(w.Body).Decode(&resp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Partner deleted successfully", resp.Message)

	assert.Equal(t, nil, mock.ExpectationsWereMet())
}
