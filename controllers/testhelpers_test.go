package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/middleware"
	"github.com/kitchencart/kitchencart-api/models"
	"github.com/kitchencart/kitchencart-api/seed"
	"github.com/kitchencart/kitchencart-api/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRouter returns a bare Gin engine in test mode.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// setupTestDB opens an in-memory database with the demo dataset loaded.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := seed.Run(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
	return db
}

// setupTestStore installs a fresh application store over the demo
// merchants and delivery boys, torn down with the test.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(seed.Merchants(), seed.DeliveryBoys())
	store.Set(s)
	t.Cleanup(func() {
		store.Set(nil)
		s.Close()
	})
	return s
}

// mockSessionMiddleware injects a logged-in user directly into the Gin
// context, standing in for the session middleware.
func mockSessionMiddleware(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Next()
	}
}

func testCustomer(id uint) models.User {
	return models.User{ID: id, Username: "arjun", Name: "Arjun Mehta", Role: models.RoleCustomer}
}

func testMerchantUser(merchantID string) models.User {
	return models.User{ID: 10, Username: "freshmart", Name: "FreshMart Grocers", Role: models.RoleMerchant, MerchantID: &merchantID}
}

func testDeliveryUser(boyID string) models.User {
	return models.User{ID: 20, Username: "ramesh", Name: "Ramesh Kumar", Role: models.RoleDeliveryBoy, DeliveryBoyID: &boyID}
}

func testAdmin() models.User {
	return models.User{ID: 30, Username: "admin", Name: "Platform Admin", Role: models.RoleAdmin}
}

// performRequest marshals the body (if any) and runs the request through
// the router.
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performRequestWithToken is performRequest with a bearer token attached.
func performRequestWithToken(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseResponse unmarshals the recorded JSON body.
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v", err)
	}
	return response
}

// errorCode digs the error code out of the response envelope.
func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}
