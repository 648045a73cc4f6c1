package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/internal/testdb"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []*entities.Ingredient{
		{ID: uuid.New(), Name: "Salt", MeasurementUnit: "g"},
		{ID: uuid.New(), Name: "Saffron", MeasurementUnit: "g"},
		{ID: uuid.New(), Name: "Milk", MeasurementUnit: "ml"},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("error seeding ingredients: %v", err)
	}
	tags := []*entities.Tag{
		{ID: uuid.New(), Name: "breakfast", Color: "#49b64e", Slug: "breakfast"},
		{ID: uuid.New(), Name: "dinner", Color: "#8775d2", Slug: "dinner"},
	}
	if err := db.Create(&tags).Error; err != nil {
		t.Fatalf("error seeding tags: %v", err)
	}
}

func TestGetIngredientsFiltersByNamePrefix(t *testing.T) {
	db := testdb.Open(t)
	seedCatalog(t, db)
	service := NewCatalogService(NewCatalogRepository(db))

	tests := []struct {
		name      string
		prefix    string
		wantNames []string
	}{
		{"no filter returns all", "", []string{"Milk", "Saffron", "Salt"}},
		{"prefix narrows", "Sa", []string{"Saffron", "Salt"}},
		{"exact prefix", "Salt", []string{"Salt"}},
		{"no match", "Pepper", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.GetIngredients(context.Background(), tt.prefix)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("expected %d ingredients, got %d", len(tt.wantNames), len(got))
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Errorf("ingredient %d: expected %q, got %q", i, want, got[i].Name)
				}
			}
		})
	}
}

func TestGetTags(t *testing.T) {
	db := testdb.Open(t)
	seedCatalog(t, db)
	service := NewCatalogService(NewCatalogRepository(db))

	tags, err := service.GetTags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "breakfast" || tags[0].Slug != "breakfast" {
		t.Fatalf("unexpected first tag: %+v", tags[0])
	}
}

func TestGetTagDetailNotFound(t *testing.T) {
	db := testdb.Open(t)
	service := NewCatalogService(NewCatalogRepository(db))

	_, err := service.GetTagDetail(context.Background(), uuid.NewString())
	if !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected a not-found-category error, got %v", err)
	}
}

func TestGetIngredientDetailNotFound(t *testing.T) {
	db := testdb.Open(t)
	service := NewCatalogService(NewCatalogRepository(db))

	_, err := service.GetIngredientDetail(context.Background(), uuid.NewString())
	if !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
