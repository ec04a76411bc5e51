package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/config"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/entity"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
	pginfra "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/infrastructure/postgres"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Operator account
	email := "operator@shopflow.vn"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, phone, is_verified)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, "Demo Operator", "0912345678").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed operator: %v", err)
	}
	fmt.Printf("seeded operator: id=%s email=%s password=%s\n", userID, email, password)

	categories := pginfra.NewCategoryRepository(pool)
	products := pginfra.NewProductRepository(pool)

	// Root category with one child
	rootName, err := valueobject.NewCategoryName("Điện tử")
	if err != nil {
		log.Fatalf("invalid category name: %v", err)
	}
	root, err := entity.NewCatCategory(rootName, valueobject.CategorySlugFromName(rootName), nil, 0)
	if err != nil {
		log.Fatalf("failed to build root category: %v", err)
	}
	if err := categories.Create(ctx, root); err != nil {
		log.Fatalf("failed to seed root category: %v", err)
	}

	childName, err := valueobject.NewCategoryName("Điện thoại")
	if err != nil {
		log.Fatalf("invalid category name: %v", err)
	}
	rootID := root.ID()
	child, err := entity.NewCatCategory(childName, valueobject.CategorySlugFromName(childName), &rootID, 1)
	if err != nil {
		log.Fatalf("failed to build child category: %v", err)
	}
	if err := categories.Create(ctx, child); err != nil {
		log.Fatalf("failed to seed child category: %v", err)
	}
	fmt.Printf("seeded categories: %s -> %s\n", root.Slug().Value(), child.Slug().Value())

	// One product with a generated SKU and barcode
	prodName, err := valueobject.NewProductName("Điện thoại ShopFlow One")
	if err != nil {
		log.Fatalf("invalid product name: %v", err)
	}
	window := 14
	p, err := entity.NewCatProduct(prodName, valueobject.ProductSlugFromName(prodName), "physical", &window)
	if err != nil {
		log.Fatalf("failed to build product: %v", err)
	}

	code, err := valueobject.GenerateSkuCode(prodName, []string{"black", "128gb"}, 1)
	if err != nil {
		log.Fatalf("failed to generate sku code: %v", err)
	}
	price, err := valueobject.MoneyFromString("5990000", "VND")
	if err != nil {
		log.Fatalf("invalid price: %v", err)
	}
	weight, err := valueobject.NewWeight(350)
	if err != nil {
		log.Fatalf("invalid weight: %v", err)
	}
	dims, err := valueobject.NewDimensions(160, 75, 9)
	if err != nil {
		log.Fatalf("invalid dimensions: %v", err)
	}
	barcode, err := valueobject.GenerateVietnameseEAN13(cfg.BarcodeCompanyPrefix, 1)
	if err != nil {
		log.Fatalf("failed to generate barcode: %v", err)
	}
	if err := p.AddSku(entity.ProductSku{Code: code, Price: price, Weight: weight, Dimensions: dims, Barcode: &barcode}); err != nil {
		log.Fatalf("failed to add sku: %v", err)
	}
	p.AssignCategory(child.ID())
	if err := products.Create(ctx, p); err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	if err := child.AddProduct(p.ID()); err == nil {
		_ = categories.Update(ctx, child)
	}
	fmt.Printf("seeded product: slug=%s sku=%s barcode=%s\n", p.Slug().Value(), code.Value(), barcode.Value())
}
