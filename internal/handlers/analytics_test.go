// internal/handlers/analytics_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creativechain/creativechain-backend/internal/middleware"
	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

func newAnalyticsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CreativeWork{},
		&models.LicenseOffering{},
		&models.Order{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	handler := NewAnalyticsHandler(services.NewAnalyticsService(db))

	r := gin.New()
	analytics := r.Group("/v1/analytics")
	analytics.Use(middleware.AuthRequired())
	{
		analytics.GET("/creator-earnings", handler.GetCreatorEarnings)
		analytics.GET("/revenue-chart", handler.GetRevenueChart)
		analytics.GET("/sales-activity", handler.GetSalesActivity)
	}

	return r, db
}

func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, "creator", "creator", 1)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAnalyticsRequiresSession(t *testing.T) {
	r, _ := newAnalyticsRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/v1/analytics/creator-earnings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body["error"])
		})
	}
}

func TestCreatorEarningsReturnsZeroedShapeFor200(t *testing.T) {
	r, db := newAnalyticsRouter(t)

	creator := models.User{
		Username:      "creator1",
		Email:         "creator1@example.com",
		UserType:      models.UserTypeCreator,
		Status:        models.UserStatusActive,
		WalletAddress: utils.GenerateWalletAddress(),
	}
	require.NoError(t, creator.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(&creator).Error)

	req, _ := http.NewRequest("GET", "/v1/analytics/creator-earnings?period=month", nil)
	req.Header.Set("Authorization", bearerToken(t, creator.ID))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                     `json:"success"`
		Data    services.CreatorEarnings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 0.0, body.Data.TotalRevenue)
	assert.Equal(t, int64(0), body.Data.TotalSales)
	assert.NotNil(t, body.Data.RevenueByType)
	assert.NotNil(t, body.Data.SalesByDay)
	assert.Empty(t, body.Data.TopWorks)
}

func TestRevenueChartAndActivityAreDense(t *testing.T) {
	r, db := newAnalyticsRouter(t)

	creator := models.User{
		Username:      "creator2",
		Email:         "creator2@example.com",
		UserType:      models.UserTypeCreator,
		Status:        models.UserStatusActive,
		WalletAddress: utils.GenerateWalletAddress(),
	}
	require.NoError(t, creator.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(&creator).Error)

	req, _ := http.NewRequest("GET", "/v1/analytics/revenue-chart", nil)
	req.Header.Set("Authorization", bearerToken(t, creator.ID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var chartBody struct {
		Data []services.MonthRevenue `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chartBody))
	assert.Len(t, chartBody.Data, 12)

	req, _ = http.NewRequest("GET", "/v1/analytics/sales-activity", nil)
	req.Header.Set("Authorization", bearerToken(t, creator.ID))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var activityBody struct {
		Data services.SalesActivity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activityBody))
	assert.Len(t, activityBody.Data.DailyActivity, 30)
}
