package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/pkg/recipe"
	"recipeshare/pkg/relation"
	"recipeshare/pkg/user"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, authorID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, authorID string, userID string) error
		GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		userRepository   user.UserRepository
		recipeRepository recipe.RecipeRepository
		subscriptions    relation.Relation[entities.Subscribe]
	}
)

// NewSubscribeRelation wires the subscribes table into the generic
// user→target relation; its guard forbids self-subscription.
func NewSubscribeRelation(db *gorm.DB) relation.Relation[entities.Subscribe] {
	return relation.New(relation.Config[entities.Subscribe]{
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

func NewSubscriptionService(
	userRepository user.UserRepository,
	recipeRepository recipe.RecipeRepository,
	subscriptions relation.Relation[entities.Subscribe],
) SubscriptionService {
	return &subscriptionService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		subscriptions:    subscriptions,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, authorID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	author, err := s.loadAuthor(ctx, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	if err := s.subscriptions.Add(ctx, userUUID, author.ID); err != nil {
		return domain.SubscriptionResponse{}, err
	}

	return s.composeSubscription(ctx, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, authorID string, userID string) error {
	author, err := s.loadAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.subscriptions.Remove(ctx, userUUID, author.ID)
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.SubscriptionResponse, int64, error) {
	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		view, err := s.composeSubscription(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, view)
	}
	return res, count, nil
}

func (s *subscriptionService) loadAuthor(ctx context.Context, authorID string) (*entities.User, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return nil, domain.ErrParseUUID
	}
	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

// composeSubscription builds the per-author projection. Recipes and the
// recipe count are computed at read time, never stored.
func (s *subscriptionService) composeSubscription(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	count, err := s.recipeRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	short := make([]domain.ShortRecipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		short = append(short, domain.ShortRecipeResponse{
			ID:          rec.ID.String(),
			Name:        rec.Name,
			Image:       rec.ImageURL,
			CookingTime: rec.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		ID:           author.ID.String(),
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      short,
		RecipesCount: count,
	}, nil
}
