package main

import (
	"fmt"

	"github.com/denhamvenom/inventoryapp/internal/config"
	"github.com/denhamvenom/inventoryapp/internal/logger"
	"github.com/denhamvenom/inventoryapp/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加队员名册
	students := []models.Student{
		{Name: "Alex Chen", Subteam: "Mechanical"},
		{Name: "Jordan Lee", Subteam: "Electrical"},
		{Name: "Sam Rivera", Subteam: "Programming"},
		{Name: "Taylor Kim", Subteam: "Mechanical"},
		{Name: "Morgan Patel", Subteam: "Business"},
	}
	for _, student := range students {
		var existing models.Student
		if err := models.DB.Where("name = ?", student.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&student).Error; err != nil {
				stdLog.Printf("Failed to create student %s: %v", student.Name, err)
			} else {
				stdLog.Printf("Created student: %s", student.Name)
			}
		} else {
			stdLog.Printf("Student already exists: %s", student.Name)
		}
	}

	// 添加零件目录
	parts := []models.Part{
		{
			PartID:          "FAST-001",
			PartName:        "M3 x 10mm Socket Head Cap Screw (100 pack)",
			Category:        "Fasteners",
			Subcategory:     "Screws",
			Type:            "M3",
			Supplier:        "McMaster-Carr",
			SupplierLink:    "https://www.mcmaster.com/91292A113/",
			ProductCode:     "91292A113",
			UnitCost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(8.52)),
			QuantityInStock: 12,
			Location:        "Bin A3",
			IsInventory:     true,
			Seasons:         "2025,2026",
		},
		{
			PartID:          "FAST-002",
			PartName:        "M3 Nylon-Insert Locknut (100 pack)",
			Category:        "Fasteners",
			Subcategory:     "Nuts",
			Type:            "M3",
			Supplier:        "McMaster-Carr",
			SupplierLink:    "https://www.mcmaster.com/93625A100/",
			ProductCode:     "93625A100",
			UnitCost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(5.31)),
			QuantityInStock: 8,
			Location:        "Bin A4",
			IsInventory:     true,
			Seasons:         "2025,2026",
		},
		{
			PartID:          "MOTR-001",
			PartName:        "Kraken X60 Brushless Motor",
			Category:        "Motors",
			Subcategory:     "Brushless",
			Type:            "Kraken",
			Supplier:        "WestCoast Products",
			SupplierLink:    "https://wcproducts.com/products/kraken",
			ProductCode:     "WCP-0940",
			UnitCost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(219.99)),
			QuantityInStock: 2,
			Location:        "Shelf M1",
			IsInventory:     true,
			Seasons:         "2026",
		},
		{
			PartID:          "ELEC-001",
			PartName:        "Spark MAX Motor Controller",
			Category:        "Electronics",
			Subcategory:     "Motor Controllers",
			Type:            "Spark",
			Supplier:        "REV Robotics",
			SupplierLink:    "https://www.revrobotics.com/rev-11-2158/",
			ProductCode:     "REV-11-2158",
			UnitCost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			QuantityInStock: 4,
			Location:        "Shelf E2",
			IsInventory:     true,
			Seasons:         "2025,2026",
		},
		{
			PartID:          "BELT-001",
			PartName:        "HTD 5mm Timing Belt 60T",
			Category:        "Motion",
			Subcategory:     "Belts",
			Type:            "HTD",
			Supplier:        "VEXpro",
			SupplierLink:    "https://www.vexrobotics.com/htd-belts.html",
			ProductCode:     "217-3453",
			UnitCost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(4.99)),
			QuantityInStock: 0,
			Location:        "Bin B1",
			IsInventory:     true,
			Seasons:         "2026",
		},
		{
			PartID:       "TOOL-001",
			PartName:     "Metric Hex Key Set",
			Category:     "Tools",
			Subcategory:  "Hand Tools",
			Supplier:     "Amazon",
			SupplierLink: "https://www.amazon.com/dp/B07C1W2JWG",
			ProductCode:  "B07C1W2JWG",
			UnitCost:     models.NewMoneyFromDecimal(decimal.NewFromFloat(12.99)),
			IsInventory:  false,
			Seasons:      "2026",
		},
	}
	for _, part := range parts {
		var existing models.Part
		if err := models.DB.Where("part_id = ?", part.PartID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&part).Error; err != nil {
				stdLog.Printf("Failed to create part %s: %v", part.PartID, err)
			} else {
				stdLog.Printf("Created part: %s", part.PartID)
			}
		} else {
			existing.PartName = part.PartName
			existing.Category = part.Category
			existing.Subcategory = part.Subcategory
			existing.Type = part.Type
			existing.Supplier = part.Supplier
			existing.SupplierLink = part.SupplierLink
			existing.ProductCode = part.ProductCode
			existing.UnitCost = part.UnitCost
			existing.Location = part.Location
			existing.IsInventory = part.IsInventory
			existing.Seasons = part.Seasons
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update part %s: %v", part.PartID, err)
			} else {
				stdLog.Printf("Updated part: %s", part.PartID)
			}
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Printf("- %d Students\n", len(students))
	fmt.Printf("- %d Catalog parts\n", len(parts))
}
