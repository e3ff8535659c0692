package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port == "" {
		t.Error("Server port should have a default")
	}
	if cfg.Banner.RotationInterval != 5*time.Second {
		t.Errorf("Expected 5s banner rotation, got %v", cfg.Banner.RotationInterval)
	}
	if cfg.Catalog.Source != CatalogSourceFixture {
		t.Errorf("Expected fixture catalog source, got %q", cfg.Catalog.Source)
	}
	if cfg.Cart.ShippingFee != "0" {
		t.Errorf("Expected zero shipping fee, got %q", cfg.Cart.ShippingFee)
	}
	if !cfg.Cart.SeedFixture {
		t.Error("Expected fixture cart seeding to be enabled by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("CATALOG_SOURCE", CatalogSourcePostgres)
	t.Setenv("BANNER_ROTATION_INTERVAL", "250ms")
	t.Setenv("CART_SHIPPING_FEE", "4.99")

	cfg := Load()

	if cfg.Server.Port != "9191" {
		t.Errorf("Expected port 9191, got %s", cfg.Server.Port)
	}
	if cfg.Catalog.Source != CatalogSourcePostgres {
		t.Errorf("Expected postgres catalog source, got %q", cfg.Catalog.Source)
	}
	if cfg.Banner.RotationInterval != 250*time.Millisecond {
		t.Errorf("Expected 250ms rotation, got %v", cfg.Banner.RotationInterval)
	}
	if cfg.Cart.ShippingFee != "4.99" {
		t.Errorf("Expected shipping fee 4.99, got %q", cfg.Cart.ShippingFee)
	}
}
