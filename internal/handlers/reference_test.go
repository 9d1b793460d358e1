// internal/handlers/reference_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cappeLindo/webcars-api/internal/config"
	"github.com/cappeLindo/webcars-api/internal/models"
	"github.com/cappeLindo/webcars-api/internal/services"
)

func referenceTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Brand{}, &models.CarModel{}))

	cfg := &config.Config{
		Environment: "test",
		Database:    config.DatabaseConfig{QueryTimeout: 5},
	}
	h := NewReferenceHandler(services.NewReferenceService(db, cfg))

	r := gin.New()
	r.GET("/v1/brands", h.List(services.ReferenceBrand))
	r.GET("/v1/brands/:id", h.Get(services.ReferenceBrand))
	r.POST("/v1/brands", h.Create(services.ReferenceBrand))
	r.PUT("/v1/brands/:id", h.Update(services.ReferenceBrand))
	r.DELETE("/v1/brands/:id", h.Delete(services.ReferenceBrand))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReferenceEndpoints(t *testing.T) {
	r := referenceTestRouter(t)

	w := doJSON(r, "POST", "/v1/brands", gin.H{"name": "Chevrolet"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "Chevrolet", created.Data.Name)

	w = doJSON(r, "GET", "/v1/brands", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chevrolet")

	w = doJSON(r, "PUT", "/v1/brands/1", gin.H{"name": "GM"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GM")

	w = doJSON(r, "DELETE", "/v1/brands/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/v1/brands/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceEndpointValidation(t *testing.T) {
	r := referenceTestRouter(t)

	w := doJSON(r, "POST", "/v1/brands", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "GET", "/v1/brands/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "GET", "/v1/brands/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceEndpointDuplicateNameConflict(t *testing.T) {
	r := referenceTestRouter(t)

	w := doJSON(r, "POST", "/v1/brands", gin.H{"name": "Chevrolet"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/v1/brands", gin.H{"name": "Chevrolet"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")
}
