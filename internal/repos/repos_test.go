package repos

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
)

func openTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.User{}, &types.Product{}, &types.GalleryItem{},
		&types.Project{}, &types.Material{}, &types.Application{},
	); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return gdb, log
}

func TestProductRepoCreateAndGet(t *testing.T) {
	gdb, log := openTestDB(t)
	repo := NewProductRepo(gdb, log)
	ctx := context.Background()

	price := 129.5
	product := &types.Product{
		Name:     "Лист PVD золото",
		Category: "sheets",
		Features: []string{"зеркальная полировка", "PVD покрытие"},
		Specifications: map[string]interface{}{
			"толщина": "1.2мм",
		},
		Price:  &price,
		Status: "active",
	}
	if err := repo.Create(ctx, nil, product); err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := repo.GetByID(ctx, nil, product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != product.Name {
		t.Fatalf("name = %q, want %q", got.Name, product.Name)
	}
	if len(got.Features) != 2 || got.Features[0] != "зеркальная полировка" {
		t.Fatalf("features round-trip broken: %v", got.Features)
	}
	if got.Specifications["толщина"] != "1.2мм" {
		t.Fatalf("specifications round-trip broken: %v", got.Specifications)
	}
	if got.Price == nil || *got.Price != price {
		t.Fatalf("price round-trip broken: %v", got.Price)
	}
}

func TestProductRepoListFilterAndPagination(t *testing.T) {
	gdb, log := openTestDB(t)
	repo := NewProductRepo(gdb, log)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		category := "sheets"
		if i%2 == 1 {
			category = "pipes"
		}
		p := &types.Product{Name: fmt.Sprintf("product-%d", i), Category: category, Status: "active"}
		if err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	products, total, err := repo.List(ctx, nil, ListFilter{Category: "sheets", Skip: 0, Limit: 100})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(products) != 3 {
		t.Fatalf("sheets: total=%d len=%d, want 3/3", total, len(products))
	}

	page, total, err := repo.List(ctx, nil, ListFilter{Skip: 2, Limit: 2})
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(page) != 2 {
		t.Fatalf("page len = %d, want 2", len(page))
	}
}

func TestMaterialRepoIncrementDownloads(t *testing.T) {
	gdb, log := openTestDB(t)
	repo := NewMaterialRepo(gdb, log)
	ctx := context.Background()

	material := &types.Material{
		Name: "Каталог.pdf", Category: "catalogs",
		FileType: "PDF", FileSize: "1 MB", FilePath: "uploads/materials/catalog.pdf",
		IsActive: true,
	}
	if err := repo.Create(ctx, nil, material); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := repo.IncrementDownloads(ctx, nil, material.ID); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}
	got, err := repo.GetByID(ctx, nil, material.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Downloads != 3 {
		t.Fatalf("downloads = %d, want 3", got.Downloads)
	}
}

func TestMaterialRepoCategoriesCountsActiveOnly(t *testing.T) {
	gdb, log := openTestDB(t)
	repo := NewMaterialRepo(gdb, log)
	ctx := context.Background()

	rows := []*types.Material{
		{Name: "a", Category: "catalogs", FileType: "PDF", FileSize: "1 MB", FilePath: "p1", IsActive: true},
		{Name: "b", Category: "catalogs", FileType: "PDF", FileSize: "1 MB", FilePath: "p2", IsActive: true},
		{Name: "c", Category: "certificates", FileType: "PDF", FileSize: "1 MB", FilePath: "p3", IsActive: true},
		{Name: "d", Category: "certificates", FileType: "PDF", FileSize: "1 MB", FilePath: "p4", IsActive: false},
	}
	for _, m := range rows {
		if err := repo.Create(ctx, nil, m); err != nil {
			t.Fatalf("create %s: %v", m.Name, err)
		}
	}

	categories, err := repo.Categories(ctx, nil)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	counts := map[string]int64{}
	for _, c := range categories {
		counts[c.Name] = c.Count
	}
	if counts["catalogs"] != 2 {
		t.Fatalf("catalogs count = %d, want 2", counts["catalogs"])
	}
	if counts["certificates"] != 1 {
		t.Fatalf("certificates count = %d, want 1 (inactive rows excluded)", counts["certificates"])
	}
}

func TestApplicationRepoUpdateProcessed(t *testing.T) {
	gdb, log := openTestDB(t)
	repo := NewApplicationRepo(gdb, log)
	ctx := context.Background()

	application := &types.Application{
		CompanyName: "ООО Фасад", ContactPerson: "Иванов", Email: "a@b.ru",
		Phone: "+7 900 000 00 00", Country: "Россия", City: "Москва",
		ProductType: "листы", Quantity: "100", Application: "фасад",
	}
	if err := repo.Create(ctx, nil, application); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Update(ctx, nil, application.ID, map[string]interface{}{"is_processed": true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, application.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsProcessed {
		t.Fatal("expected is_processed to be set")
	}
}
