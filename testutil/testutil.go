// Package testutil holds helpers shared by the package tests
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Govind-619/BuyMeAChai/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated SQLite database in a temporary directory
func NewTestDB(t *testing.T, dedupe bool) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(&config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "chai_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, dedupe))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// SignTestToken creates an HS256 access token shaped like a Supabase one
func SignTestToken(t *testing.T, secret, userID, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
	Token   string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
}

// JSON decodes the response body into v
func (r TestResponse) JSON(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Raw, v), "body: %s", r.Raw)
}

// Map decodes the response body as a JSON object
func (r TestResponse) Map(t *testing.T) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	r.JSON(t, &body)
	return body
}

// MakeTestRequest runs req against router
func MakeTestRequest(t *testing.T, router *gin.Engine, req TestRequest) TestResponse {
	t.Helper()
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		require.NoError(t, err)
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	return TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Raw:        w.Body.Bytes(),
	}
}

// AssertError checks the status and the {"error": message} body
func AssertError(t *testing.T, response TestResponse, expectedStatusCode int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode, "body: %s", response.Raw)
	assert.Equal(t, expectedMessage, response.Map(t)["error"])
}
