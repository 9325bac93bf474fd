package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mrm-lab/modelrisk/pkg/domain/interfaces"
	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
	"github.com/mrm-lab/modelrisk/pkg/repository/firestore"
	"github.com/mrm-lab/modelrisk/pkg/repository/memory"
)

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns auto-increment IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created1, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingHigh,
		})
		if err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		if created1.ID == 0 {
			t.Error("expected non-zero ID")
		}
		if created1.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
		if created1.UpdatedAt.IsZero() {
			t.Error("expected non-zero UpdatedAt")
		}

		created2, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "fraud-detection",
			Quantitative: types.RatingLow,
		})
		if err != nil {
			t.Fatalf("failed to create second assessment: %v", err)
		}

		if created2.ID <= created1.ID {
			t.Errorf("expected increasing IDs, got %d then %d", created1.ID, created2.ID)
		}
	})

	t.Run("Create rejects a second assessment for the same scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingHigh,
		}); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		_, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingLow,
		})
		if !errors.Is(err, interfaces.ErrScopeConflict) {
			t.Errorf("expected scope conflict, got %v", err)
		}

		// A different scope on the same model is fine
		if _, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Scope:        types.RegionScope("emea"),
			Quantitative: types.RatingLow,
		}); err != nil {
			t.Errorf("failed to create regional assessment: %v", err)
		}
	})

	t.Run("Get retrieves an existing assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:             "credit-scoring",
			Quantitative:        types.RatingMedium,
			QuantitativeComment: "vendor estimate",
			FactorRatings: []model.FactorRating{
				{FactorID: "complexity", Rating: types.RatingHigh, Comment: "ensemble"},
			},
		})
		if err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		retrieved, err := repo.Assessment().Get(ctx, "credit-scoring", created.ID)
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}

		if retrieved.Quantitative != types.RatingMedium {
			t.Errorf("expected quantitative MEDIUM, got %s", retrieved.Quantitative)
		}
		if retrieved.QuantitativeComment != "vendor estimate" {
			t.Errorf("unexpected comment: %s", retrieved.QuantitativeComment)
		}
		if len(retrieved.FactorRatings) != 1 {
			t.Fatalf("expected 1 factor rating, got %d", len(retrieved.FactorRatings))
		}
		if retrieved.FactorRatings[0].FactorID != "complexity" {
			t.Errorf("unexpected factor ID: %s", retrieved.FactorRatings[0].FactorID)
		}
	})

	t.Run("Get returns not found for missing or mismatched model", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Assessment().Get(ctx, "credit-scoring", 12345); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}

		created, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingHigh,
		})
		if err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		if _, err := repo.Assessment().Get(ctx, "other-model", created.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected not found for mismatched model, got %v", err)
		}
	})

	t.Run("GetByScope returns nil for absent scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		got, err := repo.Assessment().GetByScope(ctx, "credit-scoring", types.GlobalScope())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}

		created, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Scope:        types.RegionScope("emea"),
			Quantitative: types.RatingHigh,
		})
		if err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		got, err = repo.Assessment().GetByScope(ctx, "credit-scoring", types.RegionScope("emea"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.ID != created.ID {
			t.Errorf("expected assessment %d, got %+v", created.ID, got)
		}
	})

	t.Run("ListByModel orders global scope first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, scope := range []types.Scope{
			types.RegionScope("emea"),
			types.GlobalScope(),
			types.RegionScope("apac"),
		} {
			if _, err := repo.Assessment().Create(ctx, &model.Assessment{
				ModelID:      "credit-scoring",
				Scope:        scope,
				Quantitative: types.RatingMedium,
			}); err != nil {
				t.Fatalf("failed to create assessment: %v", err)
			}
		}

		assessments, err := repo.Assessment().ListByModel(ctx, "credit-scoring")
		if err != nil {
			t.Fatalf("failed to list assessments: %v", err)
		}
		if len(assessments) != 3 {
			t.Fatalf("expected 3 assessments, got %d", len(assessments))
		}
		if !assessments[0].Scope.IsGlobal() {
			t.Errorf("expected global scope first, got %s", assessments[0].Scope)
		}
		if assessments[1].Scope.RegionID != "apac" || assessments[2].Scope.RegionID != "emea" {
			t.Errorf("expected regions ordered by ID, got %s then %s",
				assessments[1].Scope, assessments[2].Scope)
		}
	})

	t.Run("Update preserves scope and creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Scope:        types.RegionScope("emea"),
			Quantitative: types.RatingLow,
		})
		if err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		modified := created.Clone()
		modified.Quantitative = types.RatingHigh
		modified.Scope = types.GlobalScope() // must be ignored

		updated, err := repo.Assessment().Update(ctx, modified)
		if err != nil {
			t.Fatalf("failed to update assessment: %v", err)
		}

		if updated.Quantitative != types.RatingHigh {
			t.Errorf("expected quantitative HIGH, got %s", updated.Quantitative)
		}
		if updated.Scope.RegionID != "emea" {
			t.Errorf("expected scope to stay emea, got %s", updated.Scope)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected CreatedAt to be preserved")
		}
	})

	t.Run("Update of a missing assessment fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assessment().Update(ctx, &model.Assessment{
			ID:           999,
			ModelID:      "credit-scoring",
			Quantitative: types.RatingHigh,
		})
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("Delete removes the assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Assessment().Create(ctx, &model.Assessment{
			ModelID:      "credit-scoring",
			Quantitative: types.RatingHigh,
		})
		if err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		if err := repo.Assessment().Delete(ctx, "credit-scoring", created.ID); err != nil {
			t.Fatalf("failed to delete assessment: %v", err)
		}

		if _, err := repo.Assessment().Get(ctx, "credit-scoring", created.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected not found after delete, got %v", err)
		}

		if err := repo.Assessment().Delete(ctx, "credit-scoring", created.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected not found on double delete, got %v", err)
		}
	})

	t.Run("History entries get IDs and come back newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.History().Add(ctx, &model.HistoryEntry{
			ModelID:       "credit-scoring",
			AssessmentID:  1,
			Action:        types.HistoryActionCreated,
			Actor:         "analyst-1",
			EffectiveTier: types.TierHigh,
			CreatedAt:     time.Now().UTC().Add(-time.Hour),
		})
		if err != nil {
			t.Fatalf("failed to add history entry: %v", err)
		}
		if first.ID == "" {
			t.Error("expected assigned entry ID")
		}

		second, err := repo.History().Add(ctx, &model.HistoryEntry{
			ModelID:      "credit-scoring",
			AssessmentID: 1,
			Action:       types.HistoryActionUpdated,
			Actor:        "analyst-2",
			Changes: []model.FieldChange{
				{Field: "quantitative_rating", From: "HIGH", To: "LOW"},
			},
		})
		if err != nil {
			t.Fatalf("failed to add history entry: %v", err)
		}

		entries, err := repo.History().ListByModel(ctx, "credit-scoring")
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != second.ID {
			t.Errorf("expected newest entry first, got %s", entries[0].ID)
		}
		if len(entries[0].Changes) != 1 {
			t.Errorf("expected 1 change on newest entry, got %d", len(entries[0].Changes))
		}
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepository)
}
