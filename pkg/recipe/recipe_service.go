package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/internal/utils/storage"
	"recipeshare/pkg/catalog"
	"recipeshare/pkg/relation"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, callerID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, callerID string) error
		FavoriteRecipe(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error)
		UnfavoriteRecipe(ctx context.Context, recipeID string, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		favorites         relation.Relation[entities.Favorite]
		carts             relation.Relation[entities.ShoppingCart]
		subscriptions     relation.Relation[entities.Subscribe]
		s3                storage.AwsS3
	}
)

// NewFavoriteRelation wires the favorites table into the generic
// user→target relation.
func NewFavoriteRelation(db *gorm.DB) relation.Relation[entities.Favorite] {
	return relation.New(relation.Config[entities.Favorite]{
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

func NewShoppingCartRelation(db *gorm.DB) relation.Relation[entities.ShoppingCart] {
	return relation.New(relation.Config[entities.ShoppingCart]{
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
}

func NewRecipeService(
	recipeRepository RecipeRepository,
	catalogRepository catalog.CatalogRepository,
	favorites relation.Relation[entities.Favorite],
	carts relation.Relation[entities.ShoppingCart],
	subscriptions relation.Relation[entities.Subscribe],
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		favorites:         favorites,
		carts:             carts,
		subscriptions:     subscriptions,
		s3:                s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		view, err := s.composeDetail(ctx, rec, viewerID)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, view)
	}
	return res, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	rec, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.composeDetail(ctx, rec, viewerID)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, ingredients, err := s.resolveComposition(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	imageURL, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	rec := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		PubDate:     time.Now(),
	}

	if err := s.recipeRepository.CreateRecipe(ctx, rec, tags, ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, rec.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, callerID string) (domain.RecipeResponse, error) {
	rec, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if rec.AuthorID.String() != callerID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	tags, ingredients, err := s.resolveComposition(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	imageURL := rec.ImageURL
	if req.Image != "" {
		imageURL, err = s.storeImage(ctx, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	updated := &entities.Recipe{
		ID:          rec.ID,
		AuthorID:    rec.AuthorID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		PubDate:     rec.PubDate,
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, updated, tags, ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, callerID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, callerID string) error {
	rec, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if rec.AuthorID.String() != callerID {
		return domain.ErrNotRecipeAuthor
	}
	return s.recipeRepository.DeleteRecipe(ctx, rec)
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error) {
	return s.addRelation(ctx, recipeID, userID, s.favorites)
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID string, userID string) error {
	return s.removeRelation(ctx, recipeID, userID, s.favorites)
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error) {
	return s.addRelation(ctx, recipeID, userID, s.carts)
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error {
	return s.removeRelation(ctx, recipeID, userID, s.carts)
}

func (s *recipeService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	return s.recipeRepository.GetShoppingList(ctx, userID)
}

func (s *recipeService) addRelation(ctx context.Context, recipeID, userID string, rel interface {
	Add(ctx context.Context, userID, targetID uuid.UUID) error
}) (domain.ShortRecipeResponse, error) {
	rec, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShortRecipeResponse{}, domain.ErrParseUUID
	}
	if err := rel.Add(ctx, userUUID, rec.ID); err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	return toShortRecipe(rec), nil
}

func (s *recipeService) removeRelation(ctx context.Context, recipeID, userID string, rel interface {
	Remove(ctx context.Context, userID, targetID uuid.UUID) error
}) error {
	rec, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return rel.Remove(ctx, userUUID, rec.ID)
}

func (s *recipeService) loadRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return rec, nil
}

// resolveComposition validates the write payload against the catalog and
// builds the tag set and ingredient join rows. Any violation rejects the
// whole operation; nothing is silently dropped or clamped.
func (s *recipeService) resolveComposition(ctx context.Context, req domain.SaveRecipeRequest) ([]*entities.Tag, []*entities.RecipeIngredient, error) {
	if req.CookingTime < 1 {
		return nil, nil, domain.ErrCookingTimeTooShort
	}
	if len(req.Tags) == 0 {
		return nil, nil, domain.ErrNoTags
	}
	if len(req.Ingredients) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}

	seenTags := make(map[string]bool, len(req.Tags))
	for _, id := range req.Tags {
		if _, err := uuid.Parse(id); err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		if seenTags[id] {
			return nil, nil, domain.ErrDuplicateTag
		}
		seenTags[id] = true
	}

	tags, err := s.catalogRepository.GetTagsByIDs(ctx, req.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(req.Tags) {
		return nil, nil, domain.ErrUnknownTag
	}

	seenIngredients := make(map[string]bool, len(req.Ingredients))
	ingredientIDs := make([]string, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if _, err := uuid.Parse(item.ID); err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		if item.Amount <= 0 {
			return nil, nil, domain.ErrInvalidAmount
		}
		if seenIngredients[item.ID] {
			return nil, nil, domain.ErrDuplicateIngredient
		}
		seenIngredients[item.ID] = true
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	known, err := s.catalogRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(known) != len(ingredientIDs) {
		return nil, nil, domain.ErrUnknownIngredient
	}

	rows := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		rows = append(rows, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: uuid.MustParse(item.ID),
			Amount:       item.Amount,
		})
	}
	return tags, rows, nil
}

// storeImage decodes a base64 payload (optionally data-URL prefixed) and
// pushes the bytes to the object store. The recipe only keeps the URL.
func (s *recipeService) storeImage(ctx context.Context, image string) (string, error) {
	if image == "" {
		return "", nil
	}

	contentType := "image/jpeg"
	payload := image
	if strings.HasPrefix(image, "data:") {
		header, rest, found := strings.Cut(image, ",")
		if !found {
			return "", domain.ErrInvalidImage
		}
		contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.ErrInvalidImage
	}

	ext := "jpg"
	if _, subtype, found := strings.Cut(contentType, "/"); found && subtype != "" {
		ext = subtype
	}
	key := fmt.Sprintf("recipes/%s.%s", uuid.NewString(), ext)
	return s.s3.UploadBytes(ctx, key, data, contentType)
}

func (s *recipeService) composeDetail(ctx context.Context, rec *entities.Recipe, viewerID string) (domain.RecipeResponse, error) {
	res := domain.RecipeResponse{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		Image:       rec.ImageURL,
		Text:        rec.Text,
		CookingTime: rec.CookingTime,
		Tags:        make([]domain.TagResponse, 0, len(rec.Tags)),
		Ingredients: make([]domain.RecipeIngredientResponse, 0, len(rec.Ingredients)),
	}

	for _, tag := range rec.Tags {
		res.Tags = append(res.Tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	for _, row := range rec.Ingredients {
		item := domain.RecipeIngredientResponse{
			ID:     row.IngredientID.String(),
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			item.Name = row.Ingredient.Name
			item.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		res.Ingredients = append(res.Ingredients, item)
	}

	if rec.Author != nil {
		res.Author = domain.AuthorResponse{
			ID:        rec.Author.ID.String(),
			Email:     rec.Author.Email,
			Username:  rec.Author.Username,
			FirstName: rec.Author.FirstName,
			LastName:  rec.Author.LastName,
		}
	}

	// Viewer-relative flags stay false for anonymous readers.
	if viewerID != "" {
		viewerUUID, err := uuid.Parse(viewerID)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrParseUUID
		}
		if res.IsFavorited, err = s.favorites.Exists(ctx, viewerUUID, rec.ID); err != nil {
			return domain.RecipeResponse{}, err
		}
		if res.IsInShoppingCart, err = s.carts.Exists(ctx, viewerUUID, rec.ID); err != nil {
			return domain.RecipeResponse{}, err
		}
		if rec.Author != nil {
			if res.Author.IsSubscribed, err = s.subscriptions.Exists(ctx, viewerUUID, rec.AuthorID); err != nil {
				return domain.RecipeResponse{}, err
			}
		}
	}

	return res, nil
}

func toShortRecipe(rec *entities.Recipe) domain.ShortRecipeResponse {
	return domain.ShortRecipeResponse{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		Image:       rec.ImageURL,
		CookingTime: rec.CookingTime,
	}
}
