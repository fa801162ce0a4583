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

func setupReviewControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	reviewController := NewReviewController(reviewService)

	user := &model.User{Email: "reviewer@example.com", PasswordHash: "hash", Name: "Reviewer"}
	testDB.Create(user)

	category := &model.Category{Name: "Jackets", Slug: "jackets", IsActive: true}
	testDB.Create(category)

	product := &model.Product{
		CategoryID: category.ID, Name: "Wool Coat", Slug: "wool-coat",
		Brand: "Northline", Price: 2500, IsActive: true,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products/:slug/reviews", reviewController.ListReviews)
	router.POST("/products/:slug/reviews", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		reviewController.CreateReview(c)
	})

	return router, testDB, user, product
}

func postReview(t *testing.T, router *gin.Engine, slug string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/products/"+slug+"/reviews", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReviewController_CreateReview_Success(t *testing.T) {
	router, _, _, product := setupReviewControllerTest(t)

	w := postReview(t, router, product.Slug, map[string]interface{}{
		"rating": 5, "title": "Warm", "comment": "Great coat",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var review map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	assert.Equal(t, "Reviewer", review["username"])
	assert.Equal(t, float64(5), review["rating"])
}

func TestReviewController_CreateReview_SecondReviewConflicts(t *testing.T) {
	router, _, _, product := setupReviewControllerTest(t)

	w := postReview(t, router, product.Slug, map[string]interface{}{"rating": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postReview(t, router, product.Slug, map[string]interface{}{"rating": 2})
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "REVIEW_ALREADY_EXISTS", body["error"])
}

func TestReviewController_CreateReview_RatingValidation(t *testing.T) {
	router, _, _, product := setupReviewControllerTest(t)

	for _, rating := range []int{0, 6, -1} {
		w := postReview(t, router, product.Slug, map[string]interface{}{"rating": rating})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	// title and comment are optional
	w := postReview(t, router, product.Slug, map[string]interface{}{"rating": 3})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReviewController_CreateReview_UnknownProduct(t *testing.T) {
	router, testDB, _, product := setupReviewControllerTest(t)

	w := postReview(t, router, "no-such-product", map[string]interface{}{"rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	testDB.Model(product).Update("is_active", false)
	w = postReview(t, router, product.Slug, map[string]interface{}{"rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewController_ListReviews(t *testing.T) {
	router, testDB, user, product := setupReviewControllerTest(t)

	testDB.Create(&model.Review{
		ProductID: product.ID, UserID: user.ID, Rating: 4, Title: "Solid",
	})

	req := httptest.NewRequest(http.MethodGet, "/products/"+product.Slug+"/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}
