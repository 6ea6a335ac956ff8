package e2e_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler"
	"github.com/ayes009/photoshare-webapp/internal/adapter/repository/objectstore"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/auth"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/middleware"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/observability"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/server"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/storage"
	"github.com/ayes009/photoshare-webapp/internal/pkg/idgen"
	authUC "github.com/ayes009/photoshare-webapp/internal/usecase/auth"
	"github.com/ayes009/photoshare-webapp/internal/usecase/catalog"
	"github.com/ayes009/photoshare-webapp/internal/usecase/engagement"
	"github.com/ayes009/photoshare-webapp/internal/usecase/upload"
)

const (
	apiBasePath      = "/api"
	testMaxAttempts  = 100
	testMaxBodyBytes = 1 << 20
)

type TestApp struct {
	Server     *httptest.Server
	Photos     *storage.MemoryStorage
	Metadata   *storage.MemoryStorage
	BaseURL    string
	httpClient *http.Client
}

// setupTestApp wires the full router over in-memory containers. The photos
// container is served by the same test server so stored URLs resolve.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	gin.SetMode(gin.TestMode)

	ts := httptest.NewUnstartedServer(nil)
	baseURL := "http://" + ts.Listener.Addr().String()

	photos := storage.NewMemoryStorage(baseURL + server.BlobRoute)
	metadata := storage.NewMemoryStorage("")

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	// Initialize repositories
	photoRepo := objectstore.NewPhotoRepo(
		storage.NewInstrumentedStorage(metadata, "metadata", metrics.StoreOperations),
		logger,
	)

	// Initialize use cases
	tokens := auth.NewTokenCodec()
	authSvc := authUC.NewService(tokens)
	catalogSvc := catalog.NewService(photoRepo, logger)
	uploadSvc := upload.NewService(photoRepo, photos, idgen.New(), logger)
	engagementSvc := engagement.NewService(photoRepo, testMaxAttempts, logger)

	// Create router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        handler.NewAuthHandler(authSvc),
		PhotoHandler:       handler.NewPhotoHandler(catalogSvc, uploadSvc, testMaxBodyBytes),
		EngagementHandler:  handler.NewEngagementHandler(engagementSvc),
		IdentityMiddleware: middleware.NewIdentityMiddleware(tokens),
		Metrics:            metrics,
		BlobHandler:        photos,
		Logger:             logger,
		Environment:        "test",
	})

	ts.Config.Handler = router.Engine()
	ts.Start()
	t.Cleanup(ts.Close)

	return &TestApp{
		Server:   ts,
		Photos:   photos,
		Metadata: metadata,
		BaseURL:  ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+apiBasePath+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

func (app *TestApp) login(t *testing.T, username, role string) string {
	t.Helper()

	resp, err := app.post("/auth/login", map[string]string{"username": username, "role": role}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	parseResponse(t, resp, &loginResp)
	return loginResp.User.Token
}

// uploadPhoto posts image as a data URI and returns the created photo.
func (app *TestApp) uploadPhoto(t *testing.T, token, title, fileName string, image []byte) map[string]any {
	t.Helper()

	body := map[string]string{
		"title":     title,
		"caption":   "caption for " + title,
		"location":  "Lisbon",
		"tags":      "test",
		"imageData": "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
		"fileName":  fileName,
	}

	var headers map[string]string
	if token != "" {
		headers = authHeader(token)
	}

	resp, err := app.post("/photos", body, headers)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var photo map[string]any
	parseResponse(t, resp, &photo)
	return photo
}

func (app *TestApp) listPhotos(t *testing.T) []map[string]any {
	t.Helper()

	resp, err := app.get("/photos", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var photos []map[string]any
	parseResponse(t, resp, &photos)
	return photos
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}
