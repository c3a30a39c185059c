// Package dbtest opens throwaway SQLite databases carrying the storefront
// schema so repositories and services can be exercised without Postgres.
package dbtest

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/db/models"
	"github.com/pariney/saree-storefront/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// schema mirrors pkg/migrate/migrations with SQLite types. User foreign keys
// are left out so line fixtures need not create accounts.
var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		full_name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		avatar_url TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		price INTEGER NOT NULL,
		original_price INTEGER NOT NULL DEFAULT 0,
		discount INTEGER NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		rating NUMERIC NOT NULL DEFAULT 0,
		reviews INTEGER NOT NULL DEFAULT 0,
		tag TEXT,
		sizes TEXT NOT NULL DEFAULT '{}',
		colors TEXT NOT NULL DEFAULT '{}',
		category TEXT NOT NULL DEFAULT '',
		created_at DATETIME
	)`,
	`CREATE TABLE hero_slides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		image TEXT NOT NULL DEFAULT '',
		tag TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		subtitle TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE cart_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME,
		UNIQUE (user_id, product_id),
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE wishlist_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		product_id INTEGER NOT NULL,
		created_at DATETIME,
		UNIQUE (user_id, product_id),
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		items TEXT NOT NULL DEFAULT '[]',
		total INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME
	)`,
}

// Open returns a fresh in-memory database with the schema applied. Every call
// gets its own database so tests never share rows.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000&_foreign_keys=1"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// the in-memory database lives as long as one connection stays open
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return conn
}

// OpenClient wraps Open in a db.Client for code that needs WithTx.
func OpenClient(t testing.TB) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := Open(t)
	return db.FromGorm(conn), conn
}

// Drop removes a table so store failures can be provoked.
func Drop(t testing.TB, conn *gorm.DB, table string) {
	t.Helper()
	if err := conn.Exec("DROP TABLE " + table).Error; err != nil {
		t.Fatalf("drop %s: %v", table, err)
	}
}

// CreateProduct inserts a catalog product with sensible defaults.
func CreateProduct(t testing.TB, conn *gorm.DB, name string, price int64) models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Brand:         "Pariney Heritage",
		Price:         price,
		OriginalPrice: price,
		Image:         "/images/" + uuid.NewString() + ".jpg",
		Rating:        decimal.RequireFromString("4.5"),
		Sizes:         pq.StringArray{"Free Size"},
		Colors:        pq.StringArray{"Red"},
		Category:      "Banarasi",
	}
	if err := conn.WithContext(context.Background()).Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// CreateUser inserts a user and its profile with the given role.
func CreateUser(t testing.TB, conn *gorm.DB, email string, role enums.ProfileRole) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "unused"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	profile := models.Profile{ID: user.ID, Role: role, CreatedAt: time.Now().UTC()}
	if err := conn.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return user
}
