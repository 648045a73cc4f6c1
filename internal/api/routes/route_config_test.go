package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/internal/api/handlers"
	"recipeshare/internal/testdb"
	"recipeshare/internal/utils"
	"recipeshare/pkg/catalog"
	"recipeshare/pkg/jwt"
	"recipeshare/pkg/recipe"
	"recipeshare/pkg/subscription"
	"recipeshare/pkg/user"
)

// stubMiddleware pins the request identity so route tests do not have
// to mint real tokens.
type stubMiddleware struct {
	userID string
}

func (m *stubMiddleware) AuthMiddleware(_ jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", m.userID)
		c.Locals("role", domain.RoleUser)
		return c.Next()
	}
}

func (m *stubMiddleware) OptionalAuthMiddleware(_ jwt.JWTService) fiber.Handler {
	return m.AuthMiddleware(nil)
}

func (m *stubMiddleware) CORSMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error { return c.Next() }
}

type stubStorage struct{}

func (stubStorage) UploadBytes(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func newTestApp(t *testing.T) (*fiber.App, recipe.RecipeService, *entities.User, *entities.Tag, *entities.Ingredient) {
	t.Helper()
	db := testdb.Open(t)
	utils.InitValidator()

	caller := &entities.User{ID: uuid.New(), Email: "caller@example.com", Username: "caller", FirstName: "Alice", LastName: "Cook"}
	tag := &entities.Tag{ID: uuid.New(), Name: "breakfast", Color: "#49b64e", Slug: "breakfast"}
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: "Salt", MeasurementUnit: "g"}
	for _, row := range []any{caller, tag, ingredient} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("error seeding: %v", err)
		}
	}

	userRepository := user.NewUserRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	subscriptions := subscription.NewSubscribeRelation(db)

	recipeService := recipe.NewRecipeService(
		recipeRepository,
		catalogRepository,
		recipe.NewFavoriteRelation(db),
		recipe.NewShoppingCartRelation(db),
		subscriptions,
		stubStorage{},
	)

	app := fiber.New()
	cfg := Config{
		App:            app,
		UserHandler:    handlers.NewUserHandler(user.NewUserService(userRepository, jwt.NewJWTService(), nil), utils.Validate),
		CatalogHandler: handlers.NewCatalogHandler(catalog.NewCatalogService(catalogRepository)),
		RecipeHandler:  handlers.NewRecipeHandler(recipeService, utils.Validate),
		SubscriptionHandler: handlers.NewSubscriptionHandler(
			subscription.NewSubscriptionService(userRepository, recipeRepository, subscriptions),
		),
		Middleware: &stubMiddleware{userID: caller.ID.String()},
		JWTService: jwt.NewJWTService(),
	}
	cfg.Setup()

	return app, recipeService, caller, tag, ingredient
}

func createRecipe(t *testing.T, service recipe.RecipeService, authorID string, tag *entities.Tag, ingredient *entities.Ingredient, amount int) domain.RecipeResponse {
	t.Helper()
	res, err := service.CreateRecipe(context.Background(), domain.SaveRecipeRequest{
		Name:        "Porridge",
		Text:        "Boil and stir.",
		CookingTime: 15,
		Tags:        []string{tag.ID.String()},
		Ingredients: []domain.RecipeIngredientRequest{{ID: ingredient.ID.String(), Amount: amount}},
	}, authorID)
	if err != nil {
		t.Fatalf("error creating recipe: %v", err)
	}
	return res
}

func TestFavoriteRouteConflict(t *testing.T) {
	app, service, caller, tag, ingredient := newTestApp(t)
	rec := createRecipe(t, service, caller.ID.String(), tag, ingredient, 10)

	url := fmt.Sprintf("/api/v1/recipes/%s/favorite", rec.ID)

	first, err := app.Test(httpRequest(t, fiber.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("error on first request: %v", err)
	}
	if first.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", first.StatusCode)
	}

	second, err := app.Test(httpRequest(t, fiber.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("error on second request: %v", err)
	}
	if second.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 on duplicate favorite, got %d", second.StatusCode)
	}
}

func TestCreateRecipeRouteRejectsBadPayload(t *testing.T) {
	app, _, _, tag, ingredient := newTestApp(t)

	body, _ := json.Marshal(domain.SaveRecipeRequest{
		Name:        "Broken",
		Text:        "No cooking time.",
		CookingTime: 0,
		Tags:        []string{tag.ID.String()},
		Ingredients: []domain.RecipeIngredientRequest{{ID: ingredient.ID.String(), Amount: 1}},
	})

	res, err := app.Test(httpRequest(t, fiber.MethodPost, "/api/v1/recipes", body))
	if err != nil {
		t.Fatalf("error on request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestDownloadShoppingCartRoute(t *testing.T) {
	app, service, caller, tag, ingredient := newTestApp(t)
	ctx := context.Background()

	first := createRecipe(t, service, caller.ID.String(), tag, ingredient, 10)
	second := createRecipe(t, service, caller.ID.String(), tag, ingredient, 15)
	for _, rec := range []domain.RecipeResponse{first, second} {
		if _, err := service.AddToShoppingCart(ctx, rec.ID, caller.ID.String()); err != nil {
			t.Fatalf("error adding to cart: %v", err)
		}
	}

	res, err := app.Test(httpRequest(t, fiber.MethodGet, "/api/v1/recipes/download_shopping_cart", nil))
	if err != nil {
		t.Fatalf("error on request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if disposition := res.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(disposition, "shopping_cart.txt") {
		t.Fatalf("unexpected content disposition: %q", disposition)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("error reading body: %v", err)
	}
	body := string(raw)
	if !strings.HasPrefix(body, "Shopping list:") {
		t.Fatalf("unexpected header: %q", body)
	}
	if !strings.Contains(body, "Salt (g) - 25") {
		t.Fatalf("expected aggregated salt line, got %q", body)
	}
}

func TestGetTagsRoute(t *testing.T) {
	app, _, _, tag, _ := newTestApp(t)

	res, err := app.Test(httpRequest(t, fiber.MethodGet, "/api/v1/tags", nil))
	if err != nil {
		t.Fatalf("error on request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	raw, _ := io.ReadAll(res.Body)
	if !bytes.Contains(raw, []byte(tag.Slug)) {
		t.Fatalf("expected tag in listing, got %s", raw)
	}
}

func httpRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("error building request: %v", err)
	}
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}
