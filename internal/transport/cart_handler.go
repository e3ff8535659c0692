package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest is the product detail "Add to Cart" action. Color and
// quantity default to the product's first color and 1.
type AddCartItemRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"omitempty"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

// UpdateCartItemRequest moves a line's quantity one step
type UpdateCartItemRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

// CartHandler serves the authenticated user's cart
type CartHandler struct {
	cartService    service.CartService
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, catalogService service.CatalogService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the cart routes behind the given middlewares
func (h *CartHandler) RegisterRoutes(r chi.Router, middlewares ...func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middlewares...)
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{productID}", h.UpdateItem)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Post("/checkout", h.Checkout)
	})
}

func cartOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return owner, true
}

// GetCart returns the cart lines and totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := cartOwner(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), owner)
	if err != nil {
		h.logger.Error("Failed to get cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// AddItem builds a product selection and adds it to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := cartOwner(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if !decodeForm(w, r, &req, h.logger) {
		return
	}

	selection, err := h.catalogService.NewSelection(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to resolve product", zap.Int("product_id", req.ProductID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	if req.Color != "" {
		if err := selection.SelectColor(req.Color); err != nil {
			middleware.RespondWithCode(w, http.StatusBadRequest, middleware.CodeInvalidSelection, err.Error())
			return
		}
	}
	if req.Quantity > 0 {
		if err := selection.SetQuantity(req.Quantity); err != nil {
			middleware.RespondWithCode(w, http.StatusBadRequest, middleware.CodeInvalidSelection, err.Error())
			return
		}
	}

	cart, err := h.cartService.AddItem(r.Context(), owner, selection)
	if err != nil {
		if errors.Is(err, service.ErrOutOfStock) {
			middleware.RespondWithCode(w, http.StatusConflict, middleware.CodeOutOfStock, "product is out of stock")
			return
		}

		h.logger.Error("Failed to add cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// UpdateItem increments or decrements a line, flooring at 1
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := cartOwner(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r, "productID")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if !decodeForm(w, r, &req, h.logger) {
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), owner, productID, req.Delta)
	if err != nil {
		if errors.Is(err, service.ErrCartLineNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "cart line not found")
			return
		}

		h.logger.Error("Failed to update cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// RemoveItem deletes a line; removing an absent line still succeeds
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := cartOwner(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r, "productID")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), owner, productID)
	if err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// Checkout places an order for the current cart
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	owner, ok := cartOwner(w, r)
	if !ok {
		return
	}

	order, err := h.cartService.Checkout(r.Context(), owner)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			middleware.RespondWithCode(w, http.StatusConflict, middleware.CodeEmptyCart, "cart is empty")
			return
		}

		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to checkout")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_number", order.Number),
		zap.String("user_id", owner),
		zap.String("total", order.Total.StringFixed(2)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}
