package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resourceocr/models"
	"resourceocr/pkg/catalog"
	"resourceocr/pkg/config"
	"resourceocr/pkg/inventory"
	"resourceocr/pkg/match/matchtest"
	"resourceocr/process/archive"
	"resourceocr/process/pipeline"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("integration-secret")
	cfg := config.Default()
	runs = newRunner(&cfg)
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp := performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(body), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login %s failed status=%d body=%s", username, resp.Code, resp.Body.String())
	}
	var out map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", out)
	}
	return token
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)
	admin := login(t, r, "admin", "admin123")

	// 1. Create a viewer
	viewer := fmt.Sprintf("viewer%d", time.Now().UnixNano())
	body, _ := json.Marshal(map[string]string{"username": viewer, "password": "pass123", "role": models.RoleViewer})
	resp := performRequest(r, http.MethodPost, "/operators", bytes.NewBuffer(body), admin, "application/json")
	if resp.Code != 200 {
		t.Fatalf("create operator failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	vtok := login(t, r, viewer, "pass123")

	// 2. Archive a run directly and read it back through the API
	run := archive.FromResult(nil, t.TempDir(), nil)
	if err := archive.Save(db, run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/runs/%d", run.ID), nil, vtok, "")
	if resp.Code != 200 {
		t.Fatalf("get run failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/runs/%d/report", run.ID), nil, vtok, "")
	if resp.Code != 200 {
		t.Fatalf("run report failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/runs", nil, vtok, "")
	if resp.Code != 200 {
		t.Fatalf("list runs failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/runs/latest", nil, vtok, "")
	if resp.Code != 200 {
		t.Fatalf("latest run failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/runs/999999999", nil, vtok, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown run got %d", resp.Code)
	}

	// 3. Viewer may not trigger runs
	resp = performRequest(r, http.MethodPost, "/runs", nil, vtok, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer run got %d", resp.Code)
	}

	// 4. A run with an empty screenshot directory fails triage and is archived as failed
	cfg := *runs.cfg
	cfg.ScreenshotDir = t.TempDir()
	runs = &runner{cfg: &cfg, open: func(c *config.Config) (*pipeline.Pipeline, func() error, error) {
		return pipeline.New(c, inventory.DefaultRoster(), catalog.New(nil, nil, nil), matchtest.Pixel{}, nil), func() error { return nil }, nil
	}}
	resp = performRequest(r, http.MethodPost, "/runs", nil, admin, "")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty screenshot dir got %d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/runs", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list runs got %d", unauth.Code)
	}
	db.Delete(&models.Run{}, run.ID)
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
