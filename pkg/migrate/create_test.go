package migrate

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Add Hero Slides", "add_hero_slides"},
		{"  orders--status  ", "orders_status"},
		{"wishlist.items v2", "wishlist_items_v2"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateWritesValidMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	path, err := createAt(dir, "Add saree fabrics", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20260301123000_add_saree_fabrics.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}

	if _, err := createAt(dir, "Add saree fabrics", now); err == nil {
		t.Fatalf("expected error when the file already exists")
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	if _, err := createAt(t.TempDir(), "  ", time.Now()); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestValidateRejectsBadFiles(t *testing.T) {
	cases := []struct{ name, body string }{
		{"bad_name.sql", "-- +goose Up\n-- +goose Down\n"},
		{"20260101000000_missing_down.sql", "-- +goose Up\nSELECT 1;\n"},
		{"20260101000000_reversed.sql", "-- +goose Down\n-- +goose Up\n"},
		{"20260101000000_unbalanced.sql", "-- +goose Up\n-- +goose StatementBegin\n-- +goose Down\n"},
	}
	for _, tc := range cases {
		name, body := tc.name, tc.body
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := ValidateDir(dir); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestEmbeddedMigrationsValidate(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
}
