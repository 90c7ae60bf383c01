package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/myrecipebox/recipebox-be/internal/ai"
	"github.com/myrecipebox/recipebox-be/internal/api/handlers"
	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	resolver *auth.Resolver,
	tokens *auth.TokenService,
	userService services.UserServiceProvider,
	recipeService services.RecipeServiceProvider,
	favoriteService services.FavoriteServiceProvider,
	suggester ai.Suggester,
	allowedOrigin string,
	imageDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	recipeHandler := handlers.NewRecipeHandler(recipeService, suggester)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	requireAuth := auth.Middleware(resolver)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to MyRecipeBox API"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.With(requireAuth).Get("/me", userHandler.GetMe)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeHandler.List)
		r.Get("/search", recipeHandler.Search)
		r.Post("/suggest-recipes", recipeHandler.Suggest)
		r.With(requireAuth).Post("/", recipeHandler.Create)
		r.With(requireAuth).Post("/save-recipe", recipeHandler.SaveSuggested)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", recipeHandler.Get)
			r.With(requireAuth).Put("/", recipeHandler.Update)
			r.With(requireAuth).Delete("/", recipeHandler.Delete)
		})
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", favoriteHandler.List)
		r.Post("/{recipeID}", favoriteHandler.Add)
		r.Delete("/{recipeID}", favoriteHandler.Remove)
	})

	// Seeded recipe images
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir))))

	return r
}
