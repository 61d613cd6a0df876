package public

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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Student{}, &models.Part{}, &models.OrderLine{}, &models.OrderSyncState{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	lineRepo := repository.NewOrderLineRepository(db)
	partRepo := repository.NewPartRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	if err := studentRepo.Create(&models.Student{Name: "Alex Chen", Subteam: "Mechanical"}); err != nil {
		t.Fatalf("seed student failed: %v", err)
	}
	if err := partRepo.Create(&models.Part{
		PartID:          "FAST-001",
		PartName:        "M3 Screw",
		Category:        "Fasteners",
		Supplier:        "McMaster-Carr",
		ProductCode:     "91251A540",
		UnitCost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(0.12)),
		QuantityInStock: 5,
		IsInventory:     true,
	}); err != nil {
		t.Fatalf("seed part failed: %v", err)
	}

	container := &provider.Container{
		Config:        &config.Config{},
		PartRepo:      partRepo,
		StudentRepo:   studentRepo,
		OrderLineRepo: lineRepo,
	}
	container.PartService = service.NewPartService(partRepo)
	container.OrderService = service.NewOrderService(lineRepo, partRepo, studentRepo, nil)
	return New(container)
}

func newTestRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.POST("/orders", h.SubmitOrder)
	r.POST("/orders/custom", h.SubmitCustomRequest)
	r.GET("/orders/:order_number", h.GetOrder)
	r.GET("/parts", h.ListParts)
	r.GET("/parts/:part_id", h.GetPart)
	return r
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

func TestSubmitOrderEndpoint(t *testing.T) {
	h := newTestHandler(t)
	r := newTestRouter(h)

	resp := doJSON(t, r, http.MethodPost, "/orders", `{
		"student_name": "Alex Chen",
		"department": "Mechanical",
		"items": [{"part_id": "FAST-001", "quantity": 2}]
	}`)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	var data struct {
		OrderNumber string             `json:"order_number"`
		Lines       []models.OrderLine `json:"lines"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data failed: %v", err)
	}
	if !strings.HasPrefix(data.OrderNumber, "ORD-") {
		t.Fatalf("order number want ORD- prefix got %s", data.OrderNumber)
	}
	if len(data.Lines) != 1 {
		t.Fatalf("lines want 1 got %d", len(data.Lines))
	}
	if data.Lines[0].PartID != "FAST-001" {
		t.Fatalf("line part id want FAST-001 got %s", data.Lines[0].PartID)
	}

	// 查询刚提交的订单
	getResp := doJSON(t, r, http.MethodGet, "/orders/"+data.OrderNumber, "")
	if getResp.StatusCode != 0 {
		t.Fatalf("get status_code want 0 got %d", getResp.StatusCode)
	}
}

func TestSubmitOrderEndpointRejectsUnknownStudent(t *testing.T) {
	h := newTestHandler(t)
	r := newTestRouter(h)

	resp := doJSON(t, r, http.MethodPost, "/orders", `{
		"student_name": "Nobody",
		"items": [{"part_id": "FAST-001", "quantity": 1}]
	}`)
	if resp.StatusCode != 400 {
		t.Fatalf("unknown student status_code want 400 got %d", resp.StatusCode)
	}
}

func TestSubmitOrderEndpointRejectsUnknownPart(t *testing.T) {
	h := newTestHandler(t)
	r := newTestRouter(h)

	resp := doJSON(t, r, http.MethodPost, "/orders", `{
		"student_name": "Alex Chen",
		"items": [{"part_id": "NOPE-999", "quantity": 1}]
	}`)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown part status_code want 404 got %d", resp.StatusCode)
	}
}

func TestSubmitCustomRequestEndpoint(t *testing.T) {
	h := newTestHandler(t)
	r := newTestRouter(h)

	resp := doJSON(t, r, http.MethodPost, "/orders/custom", `{
		"student_name": "Alex Chen",
		"part_name": "Custom bracket",
		"supplier": "SendCutSend",
		"quantity": 3,
		"estimated_cost": "15.50",
		"justification": "Intake mount"
	}`)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	var data struct {
		OrderNumber string `json:"order_number"`
		PartID      string `json:"part_id"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data failed: %v", err)
	}
	if !strings.HasPrefix(data.PartID, "CUSTOM-") {
		t.Fatalf("part id want CUSTOM- prefix got %s", data.PartID)
	}
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	h := newTestHandler(t)
	r := newTestRouter(h)

	resp := doJSON(t, r, http.MethodGet, "/orders/ORD-20260101-001", "")
	if resp.StatusCode != 404 {
		t.Fatalf("missing order status_code want 404 got %d", resp.StatusCode)
	}
}

func TestGetPartEndpoint(t *testing.T) {
	h := newTestHandler(t)
	r := newTestRouter(h)

	resp := doJSON(t, r, http.MethodGet, "/parts/FAST-001", "")
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	var part models.Part
	if err := json.Unmarshal(resp.Data, &part); err != nil {
		t.Fatalf("unmarshal part failed: %v", err)
	}
	if part.PartName != "M3 Screw" {
		t.Fatalf("part name want M3 Screw got %s", part.PartName)
	}

	missing := doJSON(t, r, http.MethodGet, "/parts/NOPE-001", "")
	if missing.StatusCode != 404 {
		t.Fatalf("missing part status_code want 404 got %d", missing.StatusCode)
	}
}
