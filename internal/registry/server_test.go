package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/petapp4all/petrol-go/internal/config"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	return NewServer(nil, []byte("test-secret"), config.GetCacheConfig(), opts...)
}

type fakeImageStore struct {
	ticket  UploadTicket
	err     error
	deleted []string
}

func (f *fakeImageStore) PresignUpload(_ context.Context, _ string) (UploadTicket, error) {
	return f.ticket, f.err
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeStationSource struct {
	stations []models.RawStation
	err      error
}

func (f *fakeStationSource) FindNearby(_ context.Context, _ models.Coordinate) ([]models.RawStation, error) {
	return f.stations, f.err
}

func TestIssueAndValidateToken(t *testing.T) {
	s := newTestServer(t)

	user := models.User{ID: "user-1", Email: "owner@example.com"}
	token, err := s.issueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "petrol-go", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	token, err := s.issueToken(models.User{ID: "user-1", Email: "owner@example.com"})
	require.NoError(t, err)

	otherServer := newTestServer(t)
	otherServer.jwtSecret = []byte("different-secret")
	foreignToken, err := otherServer.issueToken(models.User{ID: "user-2"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer " + token,
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with wrong secret",
			header:     "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/protected", s.authRequired(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantUserID != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantUserID, body["userId"])
			}
		})
	}
}

func TestPresignUpload(t *testing.T) {
	store := &fakeImageStore{
		ticket: UploadTicket{
			Key:       "images/abc",
			UploadURL: "https://bucket.s3.amazonaws.com/images/abc?sig=xyz",
			PublicURL: "https://cdn.example.com/images/abc",
		},
	}
	s := newTestServer(t, WithImageStore(store))

	token, err := s.issueToken(models.User{ID: "user-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"contentType":"image/png"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var ticket UploadTicket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticket))
	assert.Equal(t, "images/abc", ticket.Key)
	assert.Equal(t, store.ticket.UploadURL, ticket.UploadURL)
	assert.Equal(t, store.ticket.PublicURL, ticket.PublicURL)
}

func TestPresignUploadNotConfigured(t *testing.T) {
	s := newTestServer(t)

	token, err := s.issueToken(models.User{ID: "user-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"contentType":"image/png"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNearbyStations(t *testing.T) {
	source := &fakeStationSource{
		stations: []models.RawStation{
			{
				ID:         "node-1",
				Name:       "Mobil Lekki",
				Coordinate: models.Coordinate{Lat: 6.4320, Lon: 3.4250},
			},
			{
				ID:         "node-2",
				Name:       "Total Ikoyi",
				Coordinate: models.Coordinate{Lat: 6.4500, Lon: 3.4400},
			},
		},
	}
	s := newTestServer(t, WithStationSource(source))

	// Seed the price cache directly so the handler never touches the
	// database in this test.
	s.prices.cache.SetDefault(priceListCacheKey, []models.PriceEntry{
		{
			ID:          "price-1",
			StationName: "  MOBIL LEKKI ",
			PriceAndType: []models.FuelPrice{
				{ID: "p1", Type: "PMS", Price: 650},
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/station/nearby?lat=6.4281&lon=3.4219", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ResponseType string                   `json:"responseType"`
		Stations     []models.EnrichedStation `json:"stations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stations", resp.ResponseType)
	require.Len(t, resp.Stations, 2)

	// Closest first, and only the matching name carries prices.
	assert.Equal(t, "node-1", resp.Stations[0].ID)
	require.Len(t, resp.Stations[0].Prices, 1)
	assert.Equal(t, "PMS", resp.Stations[0].Prices[0].Type)
	assert.Empty(t, resp.Stations[1].Prices)
	assert.Less(t, resp.Stations[0].DistanceKm, resp.Stations[1].DistanceKm)
}

func TestNearbyStationsInvalidCoordinates(t *testing.T) {
	s := newTestServer(t, WithStationSource(&fakeStationSource{}))

	for _, query := range []string{"", "lat=abc&lon=3.4", "lat=95.0&lon=3.4", "lat=6.4"} {
		req := httptest.NewRequest(http.MethodGet, "/station/nearby?"+query, nil)
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestNearbyStationsSourceFailure(t *testing.T) {
	s := newTestServer(t, WithStationSource(&fakeStationSource{err: errors.New("overpass down")}))
	s.prices.cache.SetDefault(priceListCacheKey, []models.PriceEntry{})

	req := httptest.NewRequest(http.MethodGet, "/station/nearby?lat=6.4281&lon=3.4219", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNearbyStationsNotConfigured(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/station/nearby?lat=6.4281&lon=3.4219", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
