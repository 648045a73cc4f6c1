package domain

import (
	"fmt"
)

var (
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetTag         = "success get tag detail"
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient detail"

	MessageFailedGetTags        = "failed to get tags"
	MessageFailedGetTag         = "failed to get tag detail"
	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient detail"

	ErrTagNotFound        = fmt.Errorf("%w: tag", ErrNotFound)
	ErrIngredientNotFound = fmt.Errorf("%w: ingredient", ErrNotFound)
)

type (
	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
)
