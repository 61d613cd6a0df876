package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/provider"
	"github.com/denhamvenom/inventoryapp/internal/repository"
	"github.com/denhamvenom/inventoryapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Student{}, &models.Part{}, &models.OrderLine{}, &models.OrderSyncState{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1

	adminRepo := repository.NewAdminRepository(db)
	container := &provider.Container{
		Config:        cfg,
		AdminRepo:     adminRepo,
		PartRepo:      repository.NewPartRepository(db),
		StudentRepo:   repository.NewStudentRepository(db),
		OrderLineRepo: repository.NewOrderLineRepository(db),
	}
	container.AuthService = service.NewAuthService(cfg, adminRepo)
	container.PartService = service.NewPartService(container.PartRepo)
	container.OrderService = service.NewOrderService(container.OrderLineRepo, container.PartRepo, container.StudentRepo, nil)

	hash, err := container.AuthService.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := adminRepo.Create(&models.Admin{Username: "admin", PasswordHash: hash}); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	return New(container)
}

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *apiResponse {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return &resp
}

func TestLoginEndpoint(t *testing.T) {
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/login", h.Login)

	resp := doJSON(t, r, http.MethodPost, "/login", `{"username":"admin","password":"correct-password"}`)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data failed: %v", err)
	}
	if data.Token == "" {
		t.Fatalf("token should not be empty")
	}

	bad := doJSON(t, r, http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`)
	if bad.StatusCode != 401 {
		t.Fatalf("wrong password status_code want 401 got %d", bad.StatusCode)
	}
}

func TestCreateStudentEndpointRejectsDuplicate(t *testing.T) {
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/students", h.CreateStudent)

	first := doJSON(t, r, http.MethodPost, "/students", `{"name":"Alex Chen","subteam":"Mechanical"}`)
	if first.StatusCode != 0 {
		t.Fatalf("create status_code want 0 got %d", first.StatusCode)
	}
	dup := doJSON(t, r, http.MethodPost, "/students", `{"name":"Alex Chen"}`)
	if dup.StatusCode != 400 {
		t.Fatalf("duplicate status_code want 400 got %d", dup.StatusCode)
	}
}

func TestTriggerSyncEndpointsWithoutSyncService(t *testing.T) {
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/sync/push", h.TriggerSyncPush)
	r.POST("/sync/pull", h.TriggerSyncPull)
	r.POST("/sync/run", h.TriggerSyncFull)

	for _, path := range []string{"/sync/push", "/sync/pull", "/sync/run"} {
		resp := doJSON(t, r, http.MethodPost, path, "")
		if resp.StatusCode != 400 {
			t.Fatalf("%s status_code want 400 got %d", path, resp.StatusCode)
		}
	}
}

func TestCreatePartEndpointRejectsDuplicatePartID(t *testing.T) {
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/parts", h.CreatePart)

	body := `{"part_id":"FAST-001","part_name":"M3 Screw","unit_cost":"0.12"}`
	first := doJSON(t, r, http.MethodPost, "/parts", body)
	if first.StatusCode != 0 {
		t.Fatalf("create status_code want 0 got %d (%s)", first.StatusCode, first.Msg)
	}
	dup := doJSON(t, r, http.MethodPost, "/parts", body)
	if dup.StatusCode != 400 {
		t.Fatalf("duplicate status_code want 400 got %d", dup.StatusCode)
	}
}
