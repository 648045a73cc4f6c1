package domain

import (
	"fmt"
)

var (
	MessageSuccessSubscribe        = "subscribed to author"
	MessageSuccessUnsubscribe      = "unsubscribed from author"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe to author"
	MessageFailedUnsubscribe      = "failed to unsubscribe from author"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrAuthorNotFound    = fmt.Errorf("%w: author", ErrNotFound)
	ErrSelfSubscribe     = fmt.Errorf("%w: cannot subscribe to yourself", ErrConflict)
	ErrAlreadySubscribed = fmt.Errorf("%w: already subscribed to this author", ErrConflict)
)

type (
	// SubscriptionResponse is the per-author projection returned by the
	// subscribe endpoint and the subscriptions listing. Recipes and
	// RecipesCount are computed at read time from the author's recipes.
	SubscriptionResponse struct {
		ID           string                `json:"id"`
		Email        string                `json:"email"`
		Username     string                `json:"username"`
		FirstName    string                `json:"first_name"`
		LastName     string                `json:"last_name"`
		IsSubscribed bool                  `json:"is_subscribed"`
		Recipes      []ShortRecipeResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
