package v1

import (
	"net/http"

	"shade-storefront/internal/domain"
	"shade-storefront/internal/store"
	"shade-storefront/internal/usecase"
	"shade-storefront/pkg/utils"
)

type WishlistHandler struct {
	usecase *usecase.StorefrontUsecase
}

func NewWishlistHandler(usecase *usecase.StorefrontUsecase) *WishlistHandler {
	return &WishlistHandler{usecase: usecase}
}

type wishlistView struct {
	Items []domain.WishlistEntry `json:"items"`
	Count int                    `json:"count"`
}

func newWishlistView(wishlist *store.WishlistStore) wishlistView {
	items := wishlist.Items()
	return wishlistView{Items: items, Count: len(items)}
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newWishlistView(sf.Wishlist))
}

func decodeEntry(w http.ResponseWriter, r *http.Request) (domain.WishlistEntry, bool) {
	var entry domain.WishlistEntry
	if err := utils.DecodeJSON(w, r, &entry); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return entry, false
	}
	if entry.ID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id is required")
		return entry, false
	}
	return entry, true
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	entry, ok := decodeEntry(w, r)
	if !ok {
		return
	}
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	sf.Wishlist.AddItem(r.Context(), entry)
	utils.WriteJSON(w, http.StatusOK, newWishlistView(sf.Wishlist))
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	sf.Wishlist.RemoveItem(r.Context(), r.PathValue("id"))
	utils.WriteJSON(w, http.StatusOK, newWishlistView(sf.Wishlist))
}

func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	entry, ok := decodeEntry(w, r)
	if !ok {
		return
	}
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	present := sf.Wishlist.ToggleItem(r.Context(), entry)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"inWishlist": present})
}

func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"inWishlist": sf.Wishlist.IsInWishlist(r.PathValue("id"))})
}
