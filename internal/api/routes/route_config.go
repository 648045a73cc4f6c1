package routes

import (
	"github.com/gofiber/fiber/v2"

	"recipeshare/internal/api/handlers"
	"recipeshare/internal/middleware"
	"recipeshare/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	CatalogHandler      handlers.CatalogHandler
	RecipeHandler       handlers.RecipeHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Catalog()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users")
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Post("/forget", c.UserHandler.ForgotPassword)
		users.Post("/reset", c.UserHandler.ResetPassword)
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)

		users.Get("/subscriptions", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.GetSubscriptions)
		users.Post("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Subscribe)
		users.Delete("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Unsubscribe)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/v1/tags")
	{
		tags.Get("", c.CatalogHandler.GetTags)
		tags.Get("/:id", c.CatalogHandler.GetTagDetail)
	}

	ingredients := c.App.Group("/api/v1/ingredients")
	{
		ingredients.Get("", c.CatalogHandler.GetIngredients)
		ingredients.Get("/:id", c.CatalogHandler.GetIngredientDetail)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// Reads allow anonymous viewers; the flags just come back false.
	recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)

	auth := c.Middleware.AuthMiddleware(c.JWTService)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)

	// Registered before /:id so the literal path wins.
	recipes.Get("/download_shopping_cart", auth, c.RecipeHandler.DownloadShoppingCart)

	recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", auth, c.RecipeHandler.FavoriteRecipe)
	recipes.Delete("/:id/favorite", auth, c.RecipeHandler.UnfavoriteRecipe)
	recipes.Post("/:id/shopping_cart", auth, c.RecipeHandler.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromShoppingCart)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
