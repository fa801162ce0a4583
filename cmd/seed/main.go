package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/trendora/trendora-backend/config"
	"github.com/trendora/trendora-backend/internal/app/model"
	"github.com/trendora/trendora-backend/internal/app/repository"
	"github.com/trendora/trendora-backend/internal/db"
	"github.com/trendora/trendora-backend/pkg/util"
)

// Seed importer: loads a catalog workbook into the database and makes sure
// an admin account exists.
//
// Workbook layout:
//   sheet "Categories": name | description | image_url
//   sheet "Products":   category | name | brand | description | gender |
//                       price | discount | featured | sizes (comma separated) |
//                       color | color_hex | stock | sku_prefix |
//                       images (semicolon separated URLs)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := ensureAdminUser(db.GetDB()); err != nil {
		log.Fatal("Failed to ensure admin user:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	categoryIDs, err := importCategories(f, db.GetDB())
	if err != nil {
		log.Fatal("Failed to import categories:", err)
	}
	fmt.Printf("Categories ready: %d\n", len(categoryIDs))

	products, err := readProducts(f, categoryIDs)
	if err != nil {
		log.Fatal("Failed to read products:", err)
	}
	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	if err := productRepo.BulkCreate(products, 500); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

// ensureAdminUser creates the catalog admin when missing. Credentials come
// from ADMIN_EMAIL / ADMIN_PASSWORD; without a password nothing is created.
func ensureAdminUser(gdb *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@trendora.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		fmt.Println("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	var existing model.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if util.VerifyPassword(existing.PasswordHash, password) {
			fmt.Printf("Admin user already exists: %s\n", email)
			return nil
		}
		// credential rotated since the last run
		hash, hashErr := util.HashPassword(password)
		if hashErr != nil {
			return hashErr
		}
		if err := gdb.Model(&existing).Update("password_hash", hash).Error; err != nil {
			return err
		}
		fmt.Printf("Admin password updated: %s\n", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Catalog Admin",
		Role:         model.RoleAdmin,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		return err
	}

	fmt.Printf("Admin user created: %s\n", email)
	return nil
}

// importCategories upserts the Categories sheet and returns slug -> id
func importCategories(f *excelize.File, gdb *gorm.DB) (map[string]uint, error) {
	rows, err := f.GetRows("Categories")
	if err != nil {
		return nil, fmt.Errorf("failed to read Categories sheet: %w", err)
	}

	ids := make(map[string]uint)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		category := model.Category{
			Name:        strings.TrimSpace(row[0]),
			Slug:        util.Slugify(row[0]),
			Description: cell(row, 1),
			ImageURL:    cell(row, 2),
			IsActive:    true,
		}

		var existing model.Category
		err := gdb.Where("slug = ?", category.Slug).First(&existing).Error
		switch {
		case err == nil:
			ids[category.Slug] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := gdb.Create(&category).Error; err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			ids[category.Slug] = category.ID
		default:
			return nil, err
		}
	}
	return ids, nil
}

// readProducts parses the Products sheet into models ready for bulk insert
func readProducts(f *excelize.File, categoryIDs map[string]uint) ([]model.Product, error) {
	rows, err := f.GetRows("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to read Products sheet: %w", err)
	}

	var products []model.Product
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 6 || strings.TrimSpace(row[1]) == "" {
			continue
		}

		categorySlug := util.Slugify(cell(row, 0))
		categoryID, ok := categoryIDs[categorySlug]
		if !ok {
			return nil, fmt.Errorf("row %d: unknown category %q", i+1, cell(row, 0))
		}

		price, err := strconv.ParseFloat(cell(row, 5), 64)
		if err != nil || price <= 0 {
			return nil, fmt.Errorf("row %d: bad price %q", i+1, cell(row, 5))
		}

		discount, _ := strconv.Atoi(cell(row, 6))
		if discount < 0 || discount > 100 {
			return nil, fmt.Errorf("row %d: discount out of range", i+1)
		}

		gender := model.Gender(strings.ToUpper(cell(row, 4)))
		if gender == "" {
			gender = model.GenderUnisex
		}
		if !model.ValidGender(gender) {
			return nil, fmt.Errorf("row %d: unknown gender %q", i+1, cell(row, 4))
		}

		name := strings.TrimSpace(row[1])
		product := model.Product{
			CategoryID:      categoryID,
			Name:            name,
			Slug:            util.Slugify(name),
			Brand:           cell(row, 2),
			Description:     cell(row, 3),
			Gender:          gender,
			Price:           price,
			DiscountPercent: discount,
			IsActive:        true,
			IsFeatured:      strings.EqualFold(cell(row, 7), "true"),
		}

		variants, err := buildVariants(row, product.Slug)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		product.Variants = variants
		product.Images = buildImages(row)

		products = append(products, product)
	}
	return products, nil
}

func buildVariants(row []string, slug string) ([]model.ProductVariant, error) {
	sizes := strings.Split(cell(row, 8), ",")
	color := cell(row, 9)
	colorHex := cell(row, 10)
	stock, _ := strconv.Atoi(cell(row, 11))
	skuPrefix := cell(row, 12)
	if skuPrefix == "" {
		skuPrefix = strings.ToUpper(strings.ReplaceAll(slug, "-", ""))
	}

	var variants []model.ProductVariant
	for _, raw := range sizes {
		size := model.VariantSize(strings.ToUpper(strings.TrimSpace(raw)))
		if size == "" {
			continue
		}
		if !model.ValidSize(size) {
			return nil, fmt.Errorf("unknown size %q", raw)
		}
		variants = append(variants, model.ProductVariant{
			Size:     size,
			Color:    color,
			ColorHex: colorHex,
			Stock:    stock,
			SKU:      fmt.Sprintf("%s-%s", skuPrefix, size),
		})
	}
	return variants, nil
}

func buildImages(row []string) []model.ProductImage {
	var images []model.ProductImage
	for i, url := range strings.Split(cell(row, 13), ";") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		images = append(images, model.ProductImage{
			ImageURL:  url,
			IsPrimary: i == 0,
			SortOrder: i,
		})
	}
	return images
}

// cell reads a column defensively; short rows read as empty strings
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
