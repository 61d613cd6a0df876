package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/denhamvenom/inventoryapp/internal/models"
	"github.com/denhamvenom/inventoryapp/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newPartService(t *testing.T) *PartService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Part{}); err != nil {
		t.Fatalf("migrate parts failed: %v", err)
	}
	return NewPartService(repository.NewPartRepository(db))
}

func TestCategoryCode(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"Fasteners", "FAST"},
		{"Motors", "MOTO"},
		{"3D Printing", "DPRI"},
		{"Hex", "HEX"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := categoryCode(tc.category); got != tc.want {
			t.Fatalf("categoryCode(%q) want %q got %q", tc.category, tc.want, got)
		}
	}
}

func TestCreateGeneratesPartID(t *testing.T) {
	svc := newPartService(t)
	ctx := context.Background()

	first := &models.Part{
		PartName: "M3 Screw",
		Category: "Fasteners",
		UnitCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(0.12)),
	}
	if err := svc.Create(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.PartID != "FAST-001" {
		t.Fatalf("part id want FAST-001 got %s", first.PartID)
	}

	second := &models.Part{PartName: "M3 Locknut", Category: "Fasteners"}
	if err := svc.Create(ctx, second); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.PartID != "FAST-002" {
		t.Fatalf("part id want FAST-002 got %s", second.PartID)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := newPartService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, &models.Part{PartName: "M3 Screw", Category: "Fasteners"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := svc.Create(ctx, &models.Part{PartName: "M3 Screw", Category: "Fasteners"})
	if !errors.Is(err, ErrPartNameExists) {
		t.Fatalf("duplicate name want ErrPartNameExists got %v", err)
	}
}

func TestCreateRejectsEmptyCategoryWithoutPartID(t *testing.T) {
	svc := newPartService(t)
	err := svc.Create(context.Background(), &models.Part{PartName: "Mystery"})
	if !errors.Is(err, ErrPartInvalid) {
		t.Fatalf("empty category want ErrPartInvalid got %v", err)
	}
}

func TestDeletePart(t *testing.T) {
	svc := newPartService(t)
	ctx := context.Background()

	part := &models.Part{PartName: "M3 Screw", Category: "Fasteners"}
	if err := svc.Create(ctx, part); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, part.PartID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(part.PartID); !errors.Is(err, ErrPartNotFound) {
		t.Fatalf("after delete want ErrPartNotFound got %v", err)
	}

	if err := svc.Delete(ctx, "FAST-999"); !errors.Is(err, ErrPartNotFound) {
		t.Fatalf("delete missing want ErrPartNotFound got %v", err)
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	svc := newPartService(t)
	ctx := context.Background()

	part := &models.Part{PartName: "M3 Screw", Category: "Fasteners", QuantityInStock: 3, IsInventory: true}
	if err := svc.Create(ctx, part); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.AdjustStock(ctx, part.PartID, -10)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if updated.QuantityInStock != 0 {
		t.Fatalf("stock want 0 got %d", updated.QuantityInStock)
	}

	updated, err = svc.AdjustStock(ctx, part.PartID, 7)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if updated.QuantityInStock != 7 {
		t.Fatalf("stock want 7 got %d", updated.QuantityInStock)
	}
}

func TestListReflectsWritesImmediately(t *testing.T) {
	svc := newPartService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, &models.Part{PartName: "M3 Screw", Category: "Fasteners"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	result, err := svc.List(ctx, repository.PartListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("total want 1 got %d", result.Total)
	}

	if err := svc.Create(ctx, &models.Part{PartName: "M3 Locknut", Category: "Fasteners"}); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	result, err = svc.List(ctx, repository.PartListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("list should see the new part, total got %d", result.Total)
	}
}
