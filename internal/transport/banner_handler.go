package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
)

// BannerState is the rotator's banner set and the one currently shown
type BannerState struct {
	Current int             `json:"current"`
	Banner  domain.Banner   `json:"banner"`
	Banners []domain.Banner `json:"banners"`
}

// BannerHandler exposes the home-feed banner rotator
type BannerHandler struct {
	rotator *service.BannerRotator
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(rotator *service.BannerRotator) *BannerHandler {
	return &BannerHandler{rotator: rotator}
}

// RegisterRoutes registers the banner routes
func (h *BannerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/banners", h.GetBanners)
	r.Post("/api/banners/{index}/select", h.SelectBanner)
}

func (h *BannerHandler) state() BannerState {
	current, banner := h.rotator.Current()
	return BannerState{
		Current: current,
		Banner:  banner,
		Banners: h.rotator.Banners(),
	}
}

// GetBanners returns the banners and the current index
func (h *BannerHandler) GetBanners(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.state())
}

// SelectBanner jumps to a banner and restarts the rotation interval
func (h *BannerHandler) SelectBanner(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid banner index")
		return
	}

	if _, err := h.rotator.Select(index); err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "banner not found")
			return
		}
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to select banner")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.state())
}
