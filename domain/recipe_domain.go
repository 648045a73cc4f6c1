package domain

import (
	"fmt"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessFavorite        = "recipe added to favorites"
	MessageSuccessUnfavorite      = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetShoppingList = "success get shopping list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to add recipe to favorites"
	MessageFailedUnfavorite      = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShoppingList = "failed to get shopping list"

	ErrRecipeNotFound      = fmt.Errorf("%w: recipe", ErrNotFound)
	ErrNotRecipeAuthor     = fmt.Errorf("%w: only the author may modify a recipe", ErrForbidden)
	ErrCookingTimeTooShort = fmt.Errorf("%w: cooking_time: must be at least 1 minute", ErrValidation)
	ErrNoTags              = fmt.Errorf("%w: tags: must not be empty", ErrValidation)
	ErrDuplicateTag        = fmt.Errorf("%w: tags: duplicate tag", ErrValidation)
	ErrUnknownTag          = fmt.Errorf("%w: tags: unknown tag id", ErrValidation)
	ErrNoIngredients       = fmt.Errorf("%w: ingredients: must not be empty", ErrValidation)
	ErrDuplicateIngredient = fmt.Errorf("%w: ingredients: duplicate ingredient", ErrValidation)
	ErrUnknownIngredient   = fmt.Errorf("%w: ingredients: unknown ingredient id", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: ingredients: amount must be positive", ErrValidation)
	ErrInvalidImage        = fmt.Errorf("%w: image: malformed base64 payload", ErrValidation)
	ErrAlreadyFavorited    = fmt.Errorf("%w: recipe already in favorites", ErrConflict)
	ErrAlreadyInCart       = fmt.Errorf("%w: recipe already in shopping cart", ErrConflict)
)

type (
	// SaveRecipeRequest is the write view of a recipe; it is shared by
	// create and update since update is full-replace.
	SaveRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Tags        []string                  `json:"tags" validate:"required,min=1,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
		Image       string                    `json:"image" validate:"omitempty"` // base64, optionally data-URL prefixed
	}

	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1"`
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	// RecipeResponse is the detail view; the two booleans are computed
	// for the requesting viewer and false when anonymous.
	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           AuthorResponse             `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image,omitempty"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
	}

	ShortRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	// RecipeFilter narrows the recipe list. FavoritedOnly and InCartOnly
	// only apply for an authenticated viewer.
	RecipeFilter struct {
		AuthorID      string
		TagSlugs      []string
		FavoritedOnly bool
		InCartOnly    bool
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}
)
