package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Auth
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/refresh", standardMiddleware.ThenFunc(app.userHandler.RefreshTokens))
	mux.Get("/profile", authMiddleware.ThenFunc(app.userHandler.GetProfile))
	mux.Put("/profile", authMiddleware.ThenFunc(app.userHandler.UpdateProfile))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))

	// Search
	mux.Get("/search", standardMiddleware.ThenFunc(app.searchHandler.Search))
	mux.Get("/search/products", standardMiddleware.ThenFunc(app.searchHandler.SearchProducts))
	mux.Get("/search/services", standardMiddleware.ThenFunc(app.searchHandler.SearchServices))
	mux.Get("/search/online-services", standardMiddleware.ThenFunc(app.searchHandler.SearchOnlineServices))
	mux.Get("/search/map-data", standardMiddleware.ThenFunc(app.searchHandler.MapData))
	mux.Get("/search/categories", standardMiddleware.ThenFunc(app.searchHandler.SearchCategories))

	// Products
	mux.Post("/product", authMiddleware.ThenFunc(app.productHandler.CreateProduct))
	mux.Get("/product/get", standardMiddleware.ThenFunc(app.productHandler.ListProducts))
	mux.Get("/product/:id", standardMiddleware.ThenFunc(app.productHandler.GetProductByID))
	mux.Put("/product/:id", authMiddleware.ThenFunc(app.productHandler.UpdateProduct))
	mux.Del("/product/:id", authMiddleware.ThenFunc(app.productHandler.DeleteProduct))

	// Services
	mux.Post("/service", authMiddleware.ThenFunc(app.serviceHandler.CreateService))
	mux.Get("/service/get", standardMiddleware.ThenFunc(app.serviceHandler.ListServices))
	mux.Get("/service/:id", standardMiddleware.ThenFunc(app.serviceHandler.GetServiceByID))
	mux.Put("/service/:id", authMiddleware.ThenFunc(app.serviceHandler.UpdateService))
	mux.Del("/service/:id", authMiddleware.ThenFunc(app.serviceHandler.DeleteService))

	// Trades
	mux.Post("/trade", authMiddleware.ThenFunc(app.tradeHandler.CreateTrade))
	mux.Get("/trades", authMiddleware.ThenFunc(app.tradeHandler.ListTrades))
	mux.Get("/trade/:id", authMiddleware.ThenFunc(app.tradeHandler.GetTradeByID))
	mux.Post("/trade/:id/accept", authMiddleware.ThenFunc(app.tradeHandler.AcceptTrade))
	mux.Post("/trade/:id/decline", authMiddleware.ThenFunc(app.tradeHandler.DeclineTrade))
	mux.Post("/trade/:id/cancel", authMiddleware.ThenFunc(app.tradeHandler.CancelTrade))

	// Favorites
	mux.Post("/favorite", authMiddleware.ThenFunc(app.favoriteHandler.AddFavorite))
	mux.Get("/favorites", authMiddleware.ThenFunc(app.favoriteHandler.ListFavorites))
	mux.Get("/favorite/check", authMiddleware.ThenFunc(app.favoriteHandler.CheckFavorite))
	mux.Del("/favorite/:id", authMiddleware.ThenFunc(app.favoriteHandler.RemoveFavorite))

	// Utilities
	mux.Get("/utils/currencies", standardMiddleware.ThenFunc(app.utilsHandler.Currencies))
	mux.Get("/utils/convert", standardMiddleware.ThenFunc(app.utilsHandler.Convert))
	mux.Get("/utils/geocode", standardMiddleware.ThenFunc(app.utilsHandler.Geocode))
	mux.Get("/utils/reverse-geocode", standardMiddleware.ThenFunc(app.utilsHandler.ReverseGeocode))
	mux.Get("/utils/distance", standardMiddleware.ThenFunc(app.utilsHandler.Distance))

	// Trade updates over websocket
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	// Locally stored listing images
	mux.Get("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))))

	return mux
}
