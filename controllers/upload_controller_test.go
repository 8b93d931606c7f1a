package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kitchencart/kitchencart-api/services"
	"github.com/stretchr/testify/assert"
)

func setupUploadTest(t *testing.T) *services.MockImageService {
	t.Helper()

	db := setupTestDB(t)
	services.SetCatalogService(services.NewCatalogService(db))
	mock := services.NewMockImageService()
	mock.SetAsMockForTesting()
	t.Cleanup(func() {
		services.SetCatalogService(nil)
		services.SetImageService(nil)
	})
	return mock
}

func uploadRouter() *gin.Engine {
	router := setupTestRouter()
	auth := mockSessionMiddleware(testAdmin())
	router.POST("/merchants/:id/image", auth, UploadMerchantImage)
	router.GET("/uploads/:filename", GetUploadedImage)
	return router
}

// performUpload builds a multipart request with one file in the given form
// field and runs it through the router.
func performUpload(router *gin.Engine, path, field, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile(field, filename)
	part.Write(content)
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadMerchantImage(t *testing.T) {
	tests := []struct {
		name           string
		merchantID     string
		field          string
		filename       string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successfully upload a PNG",
			merchantID:     "m1",
			field:          "image",
			filename:       "storefront.png",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail with wrong form field",
			merchantID:     "m1",
			field:          "file",
			filename:       "storefront.png",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "MISSING_FILE",
		},
		{
			name:           "Fail with non-PNG file",
			merchantID:     "m1",
			field:          "image",
			filename:       "storefront.jpg",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_FILE_FORMAT",
		},
		{
			name:           "Fail with unknown merchant",
			merchantID:     "m99",
			field:          "image",
			filename:       "storefront.png",
			expectedStatus: http.StatusNotFound,
			expectedError:  "MERCHANT_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupUploadTest(t)
			router := uploadRouter()

			w := performUpload(router, "/merchants/"+tt.merchantID+"/image", tt.field, tt.filename, []byte("png-bytes"))

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseResponse(t, w)
			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				assert.Equal(t, tt.expectedError, errorCode(response))
				return
			}
			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.merchantID, data["merchant_id"])
			assert.Equal(t, "merchants/mock_storefront.png", data["image_key"])
			assert.NotEmpty(t, data["image_url"])
		})
	}
}

func TestUploadMerchantImage_OrphanCleanedUp(t *testing.T) {
	mock := setupUploadTest(t)
	router := uploadRouter()

	w := performUpload(router, "/merchants/m99/image", "image", "orphan.png", []byte("png-bytes"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	// The stored file must not survive a failed merchant lookup.
	assert.False(t, mock.ImageExists("merchants/mock_orphan.png"))
}

func TestUploadMerchantImage_ShowsUpInDirectory(t *testing.T) {
	setupUploadTest(t)
	router := uploadRouter()

	w := performUpload(router, "/merchants/m1/image", "image", "storefront.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusOK, w.Code)

	merchant, err := services.GetCatalogService().Merchant("m1")
	assert.NoError(t, err)
	assert.NotNil(t, merchant.ImageKey)
	assert.NotNil(t, merchant.ImageURL)
	assert.Contains(t, *merchant.ImageURL, "merchants/mock_storefront.png")
}

func TestGetUploadedImage_Validation(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Reject traversal attempts",
			filename:       `..\secret.png`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_FILENAME",
		},
		{
			name:           "Reject non-PNG extensions",
			filename:       "image.gif",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_FILE_TYPE",
		},
		{
			name:           "Unknown file is a 404",
			filename:       "does-not-exist.png",
			expectedStatus: http.StatusNotFound,
			expectedError:  "FILE_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := uploadRouter()

			w := performRequest(router, http.MethodGet, "/uploads/"+tt.filename, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, errorCode(parseResponse(t, w)))
		})
	}
}
