package v1

import (
	"net/http"

	"shade-storefront/internal/usecase"
)

// RegisterRoutes mounts the storefront API on mux. Every route runs behind
// device, which must put the device id into the request context.
func RegisterRoutes(mux *http.ServeMux, uc *usecase.StorefrontUsecase, device func(http.Handler) http.Handler) {
	cartHandler := NewCartHandler(uc)
	wishlistHandler := NewWishlistHandler(uc)
	sessionHandler := NewSessionHandler(uc)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, device(h))
	}

	// Cart
	handle("GET /api/v1/cart", cartHandler.GetCart)
	handle("POST /api/v1/cart/items", cartHandler.AddItem)
	handle("PUT /api/v1/cart/items", cartHandler.UpdateQuantity)
	handle("DELETE /api/v1/cart/items", cartHandler.RemoveItem)
	handle("PUT /api/v1/cart/visibility", cartHandler.SetVisibility)

	// Wishlist
	handle("GET /api/v1/wishlist", wishlistHandler.GetWishlist)
	handle("POST /api/v1/wishlist/items", wishlistHandler.AddItem)
	handle("GET /api/v1/wishlist/items/{id}", wishlistHandler.Contains)
	handle("DELETE /api/v1/wishlist/items/{id}", wishlistHandler.RemoveItem)
	handle("POST /api/v1/wishlist/toggle", wishlistHandler.ToggleItem)

	// Session
	handle("GET /api/v1/session", sessionHandler.GetSession)
	handle("POST /api/v1/session/login", sessionHandler.Login)
	handle("POST /api/v1/session/register", sessionHandler.Register)
	handle("POST /api/v1/session/logout", sessionHandler.Logout)
}
