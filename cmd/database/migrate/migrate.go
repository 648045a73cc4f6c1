package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"recipeshare/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"tag", &entities.Tag{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"favorite", &entities.Favorite{}},
		{"shopping cart", &entities.ShoppingCart{}},
		{"subscribe", &entities.Subscribe{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Fatalf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
