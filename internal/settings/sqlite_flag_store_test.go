package settings

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "todo-list.com/todo-list/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.Setting{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestSQLiteFlagStore_Lifecycle(t *testing.T) {
	store := NewSQLiteFlagStore(setupTestDB(t))
	ctx := context.Background()

	set, err := store.IsSet(ctx, FirstLaunchKey)
	if err != nil || set {
		t.Fatalf("expected unset flag, got %v, %v", set, err)
	}

	if err := store.Set(ctx, FirstLaunchKey, FirstLaunchValue); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := store.Set(ctx, FirstLaunchKey, FirstLaunchValue); err != nil {
		t.Fatalf("failed to overwrite flag: %v", err)
	}

	if set, _ := store.IsSet(ctx, FirstLaunchKey); !set {
		t.Error("expected flag to be set")
	}

	if err := store.Clear(ctx, FirstLaunchKey); err != nil {
		t.Fatalf("failed to clear flag: %v", err)
	}
	if set, _ := store.IsSet(ctx, FirstLaunchKey); set {
		t.Error("expected flag to be cleared")
	}
}

func TestSQLiteFlagStore_EmptyValueCountsAsUnset(t *testing.T) {
	store := NewSQLiteFlagStore(setupTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, FirstLaunchKey, ""); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if set, _ := store.IsSet(ctx, FirstLaunchKey); set {
		t.Error("expected empty value to count as unset")
	}
}
