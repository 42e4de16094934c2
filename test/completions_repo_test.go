package test

import (
	"context"
	"os"
	"testing"

	"main/repository"
	"main/test/testutils"
)

func setupCompletionsRepo(t *testing.T) (*repository.CompletionsRepo, func()) {
	t.Helper()

	testutils.SetupTestEnvironment()
	client, cleanup := testutils.SetupTestDB(t)

	db := client.Database(os.Getenv("MONGO_DB_TEST"))
	_ = db.Collection("completions").Drop(context.Background())

	return &repository.CompletionsRepo{
		MongoCollection: db.Collection("completions"),
	}, cleanup
}

func TestCompletionsRepo(t *testing.T) {
	repo, cleanup := setupCompletionsRepo(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("Get Missing Completion", func(t *testing.T) {
		got, err := repo.GetCompletion(ctx, "habit-1", "user-1", "2025-06-30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("Set Then Get", func(t *testing.T) {
		if err := repo.SetCompletion(ctx, "habit-1", "user-1", "2025-06-30", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.GetCompletion(ctx, "habit-1", "user-1", "2025-06-30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || !got.Completed {
			t.Errorf("expected completed=true, got %+v", got)
		}
	})

	t.Run("Upsert Overwrites", func(t *testing.T) {
		if err := repo.SetCompletion(ctx, "habit-1", "user-1", "2025-06-30", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.GetCompletion(ctx, "habit-1", "user-1", "2025-06-30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Completed {
			t.Errorf("expected completed=false, got %+v", got)
		}
	})

	t.Run("Completion Log Honors Since", func(t *testing.T) {
		for _, date := range []string{"2025-06-28", "2025-06-29", "2025-06-30"} {
			if err := repo.SetCompletion(ctx, "habit-log", "user-1", date, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		log, err := repo.GetCompletionLog(ctx, "habit-log", "user-1", "2025-06-29")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(log) != 2 {
			t.Errorf("expected 2 entries, got %d: %v", len(log), log)
		}
		if _, ok := log["2025-06-28"]; ok {
			t.Error("entry before since date should be excluded")
		}
	})

	t.Run("Count Completed For Date", func(t *testing.T) {
		if err := repo.SetCompletion(ctx, "habit-a", "user-count", "2025-07-01", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.SetCompletion(ctx, "habit-b", "user-count", "2025-07-01", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.SetCompletion(ctx, "habit-c", "user-count", "2025-07-01", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, err := repo.CountCompletedForDate(ctx, "user-count", "2025-07-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2, got %d", count)
		}
	})

	t.Run("Delete Habit Completions", func(t *testing.T) {
		if err := repo.SetCompletion(ctx, "habit-del", "user-1", "2025-06-30", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := repo.DeleteHabitCompletions(ctx, "habit-del", "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.GetCompletion(ctx, "habit-del", "user-1", "2025-06-30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil after delete, got %+v", got)
		}
	})
}
