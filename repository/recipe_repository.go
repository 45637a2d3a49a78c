package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/tilakWebkorps/Healthy-meal/models"

	"gorm.io/gorm"
)

// RecipeRepository is the read-only view of the externally-owned recipe
// catalog. The schedule builder uses it for referential integrity checks;
// nothing in this service writes recipes.
type RecipeRepository interface {
	Exists(recipeID uint) (bool, error)
	GetRecipeByID(recipeID uint) (*models.Recipe, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new instance of RecipeRepository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Exists reports whether a recipe with the given ID is present in the catalog.
func (r *recipeRepository) Exists(recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [RecipeRepository] Failed to check existence of recipe ID %d: %v", recipeID, err)
		return false, fmt.Errorf("failed to check existence of recipe ID %d: %w", recipeID, err)
	}
	return count > 0, nil
}

// GetRecipeByID retrieves a single recipe.
func (r *recipeRepository) GetRecipeByID(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		log.Printf("ERROR: [RecipeRepository] Failed to retrieve recipe ID %d: %v", recipeID, err)
		return nil, fmt.Errorf("failed to retrieve recipe ID %d: %w", recipeID, err)
	}
	return &recipe, nil
}
