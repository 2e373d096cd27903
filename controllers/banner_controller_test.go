package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"consent-backend/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBannerRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	bc := NewBannerController(services.NewPurposeService(gdb))
	r := gin.New()
	r.GET("/api/show-consent-banner", bc.ShowConsentBanner)
	return r, mock
}

func expectPurposeRows(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT (.+) FROM `consent_purposes`").
		WillReturnRows(sqlmock.NewRows([]string{"purpose_id", "code", "name", "is_essential", "is_active"}).
			AddRow(1, "necessary", "Strictly Necessary", true, true).
			AddRow(3, "analytics", "Analytics", false, true))
}

type bannerResponse struct {
	ShowConsentBanner bool `json:"show_consent_banner"`
	Jurisdiction      struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"jurisdiction"`
	Location struct {
		CountryCode string `json:"country_code"`
		RegionCode  string `json:"region_code"`
	} `json:"location"`
	Purposes []map[string]interface{} `json:"purposes"`
}

func TestShowConsentBanner_GDPRCountry(t *testing.T) {
	r, mock := setupBannerRouter(t)
	expectPurposeRows(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/show-consent-banner", nil)
	req.Header.Set("cf-ipcountry", "DE")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp bannerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ShowConsentBanner)
	assert.Equal(t, services.JurisdictionGDPR, resp.Jurisdiction.Code)
	assert.Equal(t, "DE", resp.Location.CountryCode)
	assert.Len(t, resp.Purposes, 2)
}

func TestShowConsentBanner_NoRequirement(t *testing.T) {
	r, mock := setupBannerRouter(t)
	expectPurposeRows(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/show-consent-banner", nil)
	req.Header.Set("x-vercel-ip-country", "US")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp bannerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.ShowConsentBanner)
	assert.Equal(t, services.JurisdictionNone, resp.Jurisdiction.Code)
}

func TestShowConsentBanner_UnknownCountryFailsOpen(t *testing.T) {
	r, mock := setupBannerRouter(t)
	expectPurposeRows(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/show-consent-banner", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp bannerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ShowConsentBanner)
	assert.Equal(t, services.JurisdictionUnknown, resp.Jurisdiction.Code)
}
