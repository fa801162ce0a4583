package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	"github.com/trendora/trendora-backend/internal/app/service"
	"github.com/trendora/trendora-backend/internal/db"
)

func setupCategoryControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(testDB))
	categoryController := NewCategoryController(categoryService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories", categoryController.ListCategories)
	router.GET("/categories/:slug", categoryController.GetCategoryBySlug)
	router.POST("/categories", categoryController.CreateCategory)

	return router, testDB
}

func TestCategoryController_ListCategories(t *testing.T) {
	router, testDB := setupCategoryControllerTest(t)

	jeans := &model.Category{Name: "Jeans", Slug: "jeans", IsActive: true}
	testDB.Create(jeans)
	testDB.Create(&model.Category{Name: "Hidden", Slug: "hidden", IsActive: false})
	testDB.Create(&model.Product{CategoryID: jeans.ID, Name: "A", Slug: "a", Brand: "B", Price: 10, IsActive: true})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])

	categories := response["categories"].([]interface{})
	first := categories[0].(map[string]interface{})
	assert.Equal(t, "Jeans", first["name"])
	assert.Equal(t, float64(1), first["product_count"])
}

func TestCategoryController_GetCategoryBySlug(t *testing.T) {
	router, testDB := setupCategoryControllerTest(t)

	jeans := &model.Category{Name: "Jeans", Slug: "jeans", IsActive: true}
	testDB.Create(jeans)
	testDB.Create(&model.Product{CategoryID: jeans.ID, Name: "A", Slug: "a", Brand: "B", Price: 10, IsActive: true})
	testDB.Create(&model.Product{CategoryID: jeans.ID, Name: "Off", Slug: "off", Brand: "B", Price: 10, IsActive: false})

	req := httptest.NewRequest(http.MethodGet, "/categories/jeans", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var category map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.Equal(t, "Jeans", category["name"])
	assert.Equal(t, float64(1), category["product_count"])
}

func TestCategoryController_GetCategoryBySlug_NotFound(t *testing.T) {
	router, testDB := setupCategoryControllerTest(t)

	testDB.Create(&model.Category{Name: "Hidden", Slug: "hidden", IsActive: false})

	for _, slug := range []string{"hidden", "nope"} {
		req := httptest.NewRequest(http.MethodGet, "/categories/"+slug, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "slug=%s", slug)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "CATEGORY_NOT_FOUND", body["error"])
	}
}

func TestCategoryController_CreateCategory(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	payload := []byte(`{"name": "Summer Dresses", "description": "Light fits"}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var category map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.Equal(t, "summer-dresses", category["slug"])
}

func TestCategoryController_CreateCategory_Duplicate(t *testing.T) {
	router, testDB := setupCategoryControllerTest(t)

	testDB.Create(&model.Category{Name: "Shoes", Slug: "shoes", IsActive: true})

	payload := []byte(`{"name": "Shoes"}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CATEGORY_NAME_EXISTS", body["error"])
}

func TestCategoryController_CreateCategory_MissingName(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
