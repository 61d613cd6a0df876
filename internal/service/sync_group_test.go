package service

import (
	"testing"

	"github.com/denhamvenom/inventoryapp/internal/constants"
	"github.com/denhamvenom/inventoryapp/internal/models"
)

func TestClassifyOrder(t *testing.T) {
	cases := []struct {
		name        string
		partID      string
		productCode string
		want        string
	}{
		{"csv summary line", "CSV-ORDER", "", constants.OrderTypeCSV},
		{"custom request", "CUSTOM-001", "N/A", constants.OrderTypeCustom},
		{"custom prefix with real product code", "CUSTOM-001", "91251A540", constants.OrderTypeDirectory},
		{"directory part id", "FAST-001", "91251A540", constants.OrderTypeDirectory},
		{"directory part id with spaces", "  FAST-001  ", "", constants.OrderTypeDirectory},
		{"lowercase falls back to directory", "fast-001", "", constants.OrderTypeDirectory},
		{"short id falls back to directory", "AB-12", "", constants.OrderTypeDirectory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyOrder(&models.OrderLine{PartID: tc.partID, ProductCode: tc.productCode})
			if got != tc.want {
				t.Fatalf("classify part=%q code=%q want %s got %s", tc.partID, tc.productCode, tc.want, got)
			}
		})
	}

	if got := classifyOrder(nil); got != constants.OrderTypeDirectory {
		t.Fatalf("nil line want Directory Order got %s", got)
	}
}

func TestGroupOrderLinesPreservesFirstSeenOrder(t *testing.T) {
	lines := []models.OrderLine{
		{ID: 1, OrderNumber: "ORD-20260120-002", PartID: "FAST-001"},
		{ID: 2, OrderNumber: "ORD-20260120-001", PartID: "CSV-ORDER"},
		{ID: 3, OrderNumber: "ORD-20260120-002", PartID: "FAST-002"},
		{ID: 4, OrderNumber: "", PartID: "FAST-003"},
	}

	groups := groupOrderLines(lines)
	if len(groups) != 2 {
		t.Fatalf("groups want 2 got %d", len(groups))
	}
	if groups[0].OrderNumber != "ORD-20260120-002" || groups[1].OrderNumber != "ORD-20260120-001" {
		t.Fatalf("group order not preserved: %s, %s", groups[0].OrderNumber, groups[1].OrderNumber)
	}
	if len(groups[0].Lines) != 2 {
		t.Fatalf("first group lines want 2 got %d", len(groups[0].Lines))
	}
	if groups[0].OrderType != constants.OrderTypeDirectory {
		t.Fatalf("first group type want Directory Order got %s", groups[0].OrderType)
	}
	if groups[1].OrderType != constants.OrderTypeCSV {
		t.Fatalf("second group type want CSV Order got %s", groups[1].OrderType)
	}
}
