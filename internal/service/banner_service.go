package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain"

	"go.uber.org/zap"
)

var ErrBannerNotFound = errors.New("banner not found")

// BannerRotator cycles the home-feed promotional banners on a fixed interval.
// A manual selection restarts the interval.
type BannerRotator struct {
	banners  []domain.Banner
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current int

	restart chan struct{}
}

// NewBannerRotator creates a rotator; an interval <= 0 disables automatic rotation
func NewBannerRotator(banners []domain.Banner, interval time.Duration, logger *zap.Logger) *BannerRotator {
	return &BannerRotator{
		banners:  banners,
		interval: interval,
		logger:   logger,
		restart:  make(chan struct{}, 1),
	}
}

// Run advances the current banner every interval until ctx is done
func (r *BannerRotator) Run(ctx context.Context) {
	if r.interval <= 0 || len(r.banners) == 0 {
		<-ctx.Done()
		return
	}

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Banner rotation stopped")
			return
		case <-r.restart:
			timer.Reset(r.interval)
		case <-timer.C:
			r.advance()
			timer.Reset(r.interval)
		}
	}
}

func (r *BannerRotator) advance() {
	r.mu.Lock()
	r.current = (r.current + 1) % len(r.banners)
	r.mu.Unlock()
}

// Current returns the index and banner currently shown
func (r *BannerRotator) Current() (int, domain.Banner) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.banners) == 0 {
		return 0, domain.Banner{}
	}
	return r.current, r.banners[r.current]
}

// Banners returns the full banner set
func (r *BannerRotator) Banners() []domain.Banner {
	return append([]domain.Banner(nil), r.banners...)
}

// Select shows the banner at index and restarts the rotation interval
func (r *BannerRotator) Select(index int) (domain.Banner, error) {
	if index < 0 || index >= len(r.banners) {
		return domain.Banner{}, ErrBannerNotFound
	}

	r.mu.Lock()
	r.current = index
	r.mu.Unlock()

	select {
	case r.restart <- struct{}{}:
	default:
	}

	return r.banners[index], nil
}
