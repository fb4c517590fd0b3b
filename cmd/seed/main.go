package main

import (
	"github.com/martstore/internal/authz"
	"github.com/martstore/internal/config"
	"github.com/martstore/internal/logger"
	"github.com/martstore/internal/models"

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

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Description: "Phones, audio and smart devices"},
		{Name: "Lifestyle", Description: "Everyday essentials and home goods"},
		{Name: "Accessories", Description: "Chargers, cables and add-ons"},
	}

	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Name)
			categoryIDs[cat.Name] = cat.ID
			continue
		}
		stdLog.Printf("Category already exists: %s", existing.Name)
		categoryIDs[existing.Name] = existing.ID
	}

	// 添加商品
	products := []models.Product{
		{
			CategoryID:    categoryIDs["Electronics"],
			Name:          "Wireless Bluetooth Earphones",
			Description:   "High quality sound, long battery life, comfortable to wear",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			StockQuantity: 120,
		},
		{
			CategoryID:    categoryIDs["Electronics"],
			Name:          "Smart Watch",
			Description:   "Health monitoring, fitness tracking, message notifications",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			StockQuantity: 60,
		},
		{
			CategoryID:    categoryIDs["Accessories"],
			Name:          "Portable Power Bank",
			Description:   "High capacity, fast charging, multi-device compatible",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			StockQuantity: 200,
		},
		{
			CategoryID:    categoryIDs["Lifestyle"],
			Name:          "Multi-function Backpack",
			Description:   "Large capacity, waterproof and anti-theft, USB charging port",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			StockQuantity: 45,
		},
		{
			CategoryID:    categoryIDs["Accessories"],
			Name:          "USB-C Fast Charger",
			Description:   "65W GaN charger with dual ports",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(29.90)),
			StockQuantity: 300,
		},
		{
			CategoryID:    categoryIDs["Lifestyle"],
			Name:          "Insulated Water Bottle",
			Description:   "Keeps drinks cold for 24 hours",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(19.90)),
			StockQuantity: 0,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Name)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
			continue
		}
		existing.CategoryID = prod.CategoryID
		existing.Description = prod.Description
		existing.Price = prod.Price
		existing.StockQuantity = prod.StockQuantity
		if err := models.DB.Save(&existing).Error; err != nil {
			stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
		} else {
			stdLog.Printf("Updated product: %s", prod.Name)
		}
	}

	// 初始化内置角色策略并为演示账号分配细粒度角色
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz service: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap builtin roles: %v", err)
	}

	demoStaff := []struct {
		Email string
		Roles []string
	}{
		{Email: "ops@martstore.local", Roles: []string{"operations"}},
		{Email: "support@martstore.local", Roles: []string{"support"}},
	}
	for _, staff := range demoStaff {
		var user models.User
		if err := models.DB.Where("email = ?", staff.Email).First(&user).Error; err != nil {
			stdLog.Printf("Skip role assignment for %s: user not found", staff.Email)
			continue
		}
		if err := authzService.SetUserRoles(user.ID, staff.Roles); err != nil {
			stdLog.Printf("Failed to assign roles for %s: %v", staff.Email, err)
			continue
		}
		stdLog.Printf("Assigned roles %v to %s", staff.Roles, staff.Email)
	}

	stdLog.Println("Seed data ready")
}
