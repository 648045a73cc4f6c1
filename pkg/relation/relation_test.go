package relation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/internal/testdb"
)

func newFavoriteRelation(db *gorm.DB) Relation[entities.Favorite] {
	return New(Config[entities.Favorite]{
		DB:           db,
		UserColumn:   "user_id",
		TargetColumn: "recipe_id",
		ErrExists:    domain.ErrAlreadyFavorited,
		NewRow: func(userID, recipeID uuid.UUID) *entities.Favorite {
			return &entities.Favorite{
				ID:        uuid.New(),
				UserID:    userID,
				RecipeID:  recipeID,
				CreatedAt: time.Now(),
			}
		},
	})
}

func newSubscribeRelation(db *gorm.DB) Relation[entities.Subscribe] {
	return New(Config[entities.Subscribe]{
		DB:           db,
		UserColumn:   "user_id",
		TargetColumn: "author_id",
		ErrExists:    domain.ErrAlreadySubscribed,
		NewRow: func(userID, authorID uuid.UUID) *entities.Subscribe {
			return &entities.Subscribe{
				ID:        uuid.New(),
				UserID:    userID,
				AuthorID:  authorID,
				CreatedAt: time.Now(),
			}
		},
		Guard: func(userID, authorID uuid.UUID) error {
			if userID == authorID {
				return domain.ErrSelfSubscribe
			}
			return nil
		},
	})
}

func TestAddThenExists(t *testing.T) {
	db := testdb.Open(t)
	favorites := newFavoriteRelation(db)
	ctx := context.Background()

	userID, recipeID := uuid.New(), uuid.New()

	if err := favorites.Add(ctx, userID, recipeID); err != nil {
		t.Fatalf("unexpected error on first add: %v", err)
	}

	exists, err := favorites.Exists(ctx, userID, recipeID)
	if err != nil {
		t.Fatalf("unexpected error on exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected pair to exist after add")
	}
}

func TestAddTwiceReturnsConflict(t *testing.T) {
	db := testdb.Open(t)
	favorites := newFavoriteRelation(db)
	ctx := context.Background()

	userID, recipeID := uuid.New(), uuid.New()

	if err := favorites.Add(ctx, userID, recipeID); err != nil {
		t.Fatalf("unexpected error on first add: %v", err)
	}

	err := favorites.Add(ctx, userID, recipeID)
	if !errors.Is(err, domain.ErrAlreadyFavorited) {
		t.Fatalf("expected ErrAlreadyFavorited, got %v", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected a conflict-category error, got %v", err)
	}

	var count int64
	if err := db.Model(&entities.Favorite{}).Count(&count).Error; err != nil {
		t.Fatalf("unexpected error counting rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after duplicate add, got %d", count)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	favorites := newFavoriteRelation(db)
	ctx := context.Background()

	userID, recipeID := uuid.New(), uuid.New()

	if err := favorites.Add(ctx, userID, recipeID); err != nil {
		t.Fatalf("unexpected error on add: %v", err)
	}

	if err := favorites.Remove(ctx, userID, recipeID); err != nil {
		t.Fatalf("unexpected error on first remove: %v", err)
	}
	if err := favorites.Remove(ctx, userID, recipeID); err != nil {
		t.Fatalf("expected second remove to succeed, got %v", err)
	}

	var count int64
	if err := db.Model(&entities.Favorite{}).Count(&count).Error; err != nil {
		t.Fatalf("unexpected error counting rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 rows after removes, got %d", count)
	}
}

func TestRelationsAreIndependent(t *testing.T) {
	db := testdb.Open(t)
	favorites := newFavoriteRelation(db)
	carts := New(Config[entities.ShoppingCart]{
		DB:           db,
		UserColumn:   "user_id",
		TargetColumn: "recipe_id",
		ErrExists:    domain.ErrAlreadyInCart,
		NewRow: func(userID, recipeID uuid.UUID) *entities.ShoppingCart {
			return &entities.ShoppingCart{
				ID:        uuid.New(),
				UserID:    userID,
				RecipeID:  recipeID,
				CreatedAt: time.Now(),
			}
		},
	})
	ctx := context.Background()

	userID, recipeID := uuid.New(), uuid.New()

	if err := favorites.Add(ctx, userID, recipeID); err != nil {
		t.Fatalf("unexpected error on favorite add: %v", err)
	}

	inCart, err := carts.Exists(ctx, userID, recipeID)
	if err != nil {
		t.Fatalf("unexpected error on cart exists: %v", err)
	}
	if inCart {
		t.Fatalf("favoriting must not affect cart membership")
	}
}

func TestSubscribeGuardRejectsSelf(t *testing.T) {
	db := testdb.Open(t)
	subscriptions := newSubscribeRelation(db)
	ctx := context.Background()

	userID := uuid.New()

	err := subscriptions.Add(ctx, userID, userID)
	if !errors.Is(err, domain.ErrSelfSubscribe) {
		t.Fatalf("expected ErrSelfSubscribe, got %v", err)
	}

	// The guard fires regardless of prior state, including repeats.
	if err := subscriptions.Add(ctx, userID, userID); !errors.Is(err, domain.ErrSelfSubscribe) {
		t.Fatalf("expected ErrSelfSubscribe on repeat, got %v", err)
	}

	var count int64
	if err := db.Model(&entities.Subscribe{}).Count(&count).Error; err != nil {
		t.Fatalf("unexpected error counting rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no subscription rows, got %d", count)
	}
}
