package v1

import (
	"net/http"

	"shade-storefront/internal/domain"
	"shade-storefront/internal/store"
	"shade-storefront/internal/usecase"
	"shade-storefront/pkg/utils"
)

type CartHandler struct {
	usecase *usecase.StorefrontUsecase
}

func NewCartHandler(usecase *usecase.StorefrontUsecase) *CartHandler {
	return &CartHandler{usecase: usecase}
}

type cartLineView struct {
	domain.CartLine
	Key string `json:"key"`
}

type cartView struct {
	Items     []cartLineView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"itemCount"`
	IsOpen    bool           `json:"isOpen"`
}

func newCartView(cart *store.CartStore) cartView {
	lines := cart.Items()
	items := make([]cartLineView, len(lines))
	for i, line := range lines {
		items[i] = cartLineView{CartLine: line, Key: line.Key().String()}
	}
	return cartView{
		Items:     items,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		IsOpen:    cart.IsOpen(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartView(sf.Cart))
}

type AddToCartRequest struct {
	Product domain.CartProduct `json:"product"`
	Color   string             `json:"color"`
	Size    string             `json:"size"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Product.ID == "" {
		utils.WriteError(w, http.StatusBadRequest, "product.id is required")
		return
	}
	if req.Product.Price < 0 {
		utils.WriteError(w, http.StatusBadRequest, "product.price must not be negative")
		return
	}

	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	sf.Cart.AddItem(r.Context(), req.Product, domain.Variant{Color: req.Color, Size: req.Size})
	utils.WriteJSON(w, http.StatusOK, newCartView(sf.Cart))
}

type UpdateCartRequest struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	key := domain.LineKey{ProductID: req.ProductID, Color: req.Color, Size: req.Size}
	sf.Cart.UpdateQuantity(r.Context(), key, req.Quantity)
	utils.WriteJSON(w, http.StatusOK, newCartView(sf.Cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := domain.LineKey{ProductID: q.Get("productId"), Color: q.Get("color"), Size: q.Get("size")}
	if key.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	sf.Cart.RemoveItem(r.Context(), key)
	utils.WriteJSON(w, http.StatusOK, newCartView(sf.Cart))
}

type CartVisibilityRequest struct {
	IsOpen *bool `json:"isOpen"`
}

func (h *CartHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req CartVisibilityRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil || req.IsOpen == nil {
		utils.WriteError(w, http.StatusBadRequest, "isOpen is required")
		return
	}

	sf, ok := openStorefront(w, r, h.usecase)
	if !ok {
		return
	}
	sf.Cart.SetIsOpen(*req.IsOpen)
	utils.WriteJSON(w, http.StatusOK, newCartView(sf.Cart))
}
