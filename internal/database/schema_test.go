package database

import (
	"io/fs"
	"strings"
	"testing"

	"storefront/internal/config"
	"storefront/migrations"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	content, err := fs.ReadFile(migrations.FS, name)
	if err != nil {
		t.Fatalf("Failed to read migration %s: %v", name, err)
	}
	return string(content)
}

func TestMigrationFilesExist(t *testing.T) {
	expectedMigrations := []string{
		"00001_create_categories_table.sql",
		"00002_create_products_table.sql",
		"00003_seed_catalog.sql",
	}

	for _, migration := range expectedMigrations {
		if _, err := fs.Stat(migrations.FS, migration); err != nil {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	files, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		t.Fatalf("Failed to read migrations: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content := readMigration(t, file.Name())

		for _, directive := range []string{
			"-- +goose Up",
			"-- +goose Down",
			"-- +goose StatementBegin",
			"-- +goose StatementEnd",
		} {
			if !strings.Contains(content, directive) {
				t.Errorf("Migration file %s missing '%s' directive", file.Name(), directive)
			}
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	expectedTables := map[string]string{
		"categories": "00001_create_categories_table.sql",
		"products":   "00002_create_products_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		content := readMigration(t, migrationFile)

		if !strings.Contains(content, "CREATE TABLE IF NOT EXISTS "+tableName) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}
		if !strings.Contains(content, "DROP TABLE IF EXISTS "+tableName) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestProductsTableConstraints(t *testing.T) {
	content := readMigration(t, "00002_create_products_table.sql")

	requiredFragments := []string{
		"id INTEGER PRIMARY KEY",
		"price NUMERIC",
		"original_price > price",
		"rating DOUBLE PRECISION",
		"REFERENCES categories(id)",
		"colors TEXT[]",
		"cardinality(colors) > 0",
		"position INTEGER NOT NULL UNIQUE",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(content, fragment) {
			t.Errorf("Products table missing definition: %s", fragment)
		}
	}

	// float4 ratings come back widened (4.8 -> 4.800000190734863)
	if strings.Contains(content, "rating REAL") {
		t.Error("Products rating must be stored as double precision")
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "shop",
		Password: "p@ss",
		Database: "storefront",
		Schema:   "public",
	})

	for _, fragment := range []string{"postgres://shop:p%40ss@db:5433/storefront", "sslmode=disable", "search_path=public"} {
		if !strings.Contains(dsn, fragment) {
			t.Errorf("DSN %q missing %q", dsn, fragment)
		}
	}
}
