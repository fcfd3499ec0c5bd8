package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/memento/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "memento-db-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func TestOpenSQLiteAppliesEmbeddedMigrations(t *testing.T) {
	database := openTestDatabase(t)

	for _, table := range []string{"users", "entries", "goals", "special_days", "schema_migrations"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after migrations", table)
		}
	}

	var applied int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("no migrations recorded in schema_migrations")
	}
}

func TestOpenSQLiteIsIdempotentAcrossRestarts(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "memento-restart.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := NewRepositories(first).Users.Create(&models.User{Username: "sam", PasswordHash: "x"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	firstSQL, err := first.DB()
	if err != nil {
		t.Fatalf("first sql db: %v", err)
	}
	if err := firstSQL.Close(); err != nil {
		t.Fatalf("close first connection: %v", err)
	}

	second, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	secondSQL, err := second.DB()
	if err != nil {
		t.Fatalf("second sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = secondSQL.Close()
	})

	user, err := NewRepositories(second).Users.FindByUsername("sam")
	if err != nil {
		t.Fatalf("find user after reopen: %v", err)
	}
	if user.Username != "sam" {
		t.Fatalf("username = %q, want sam", user.Username)
	}
}

func TestUserUsernameUniqueness(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))

	if err := repos.Users.Create(&models.User{Username: "sam", PasswordHash: "x"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := repos.Users.Create(&models.User{Username: "sam", PasswordHash: "y"}); err == nil {
		t.Fatal("duplicate username must violate the unique index")
	}

	exists, err := repos.Users.ExistsByUsername("sam")
	if err != nil || !exists {
		t.Fatalf("ExistsByUsername = %v, %v", exists, err)
	}
}

func seedUsers(t *testing.T, repos *Repositories, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		if err := repos.Users.Create(&models.User{Username: username, PasswordHash: "x"}); err != nil {
			t.Fatalf("create user %s: %v", username, err)
		}
	}
}

func TestEntryUserDateUniqueness(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	seedUsers(t, repos, "sam", "pat")

	day := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if err := repos.Entries.Create(&models.Entry{UserID: 1, Date: day, Title: "first"}); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := repos.Entries.Create(&models.Entry{UserID: 1, Date: day, Title: "second"}); err == nil {
		t.Fatal("duplicate (user, date) must violate the unique index")
	}
	if err := repos.Entries.Create(&models.Entry{UserID: 2, Date: day, Title: "other user"}); err != nil {
		t.Fatalf("same date for another user must be allowed: %v", err)
	}
}

func TestEntryDayRangeLookup(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	seedUsers(t, repos, "sam")

	day := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if err := repos.Entries.Create(&models.Entry{UserID: 1, Date: day, Title: "Trip"}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	entry, found, err := repos.Entries.FindByUserAndDayRange(1, day, day.AddDate(0, 0, 1))
	if err != nil || !found {
		t.Fatalf("lookup = found %v, err %v", found, err)
	}
	if entry.Title != "Trip" {
		t.Fatalf("title = %q, want Trip", entry.Title)
	}

	_, found, err = repos.Entries.FindByUserAndDayRange(1, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	if err != nil || found {
		t.Fatalf("next-day lookup = found %v, err %v, want no row", found, err)
	}
	_, found, err = repos.Entries.FindByUserAndDayRange(2, day, day.AddDate(0, 0, 1))
	if err != nil || found {
		t.Fatalf("foreign-user lookup = found %v, err %v, want no row", found, err)
	}
}

func TestGoalDeleteScopedToOwner(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	seedUsers(t, repos, "sam")

	goal := models.Goal{UserID: 1, Text: "read more"}
	if err := repos.Goals.Create(&goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	deleted, err := repos.Goals.DeleteByIDForUser(goal.ID, 2)
	if err != nil || deleted != 0 {
		t.Fatalf("foreign delete = %d rows, err %v, want none", deleted, err)
	}
	deleted, err = repos.Goals.DeleteByIDForUser(goal.ID, 1)
	if err != nil || deleted != 1 {
		t.Fatalf("owner delete = %d rows, err %v, want one", deleted, err)
	}
}
