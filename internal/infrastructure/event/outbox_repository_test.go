package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveEntry(t *testing.T, repo *GormOutboxRepository, mutate func(e *shared.OutboxEntry)) *shared.OutboxEntry {
	t.Helper()
	entry := shared.NewOutboxEntry(newTestEvent("ReturnReceived"), []byte(`{}`))
	if mutate != nil {
		mutate(entry)
	}
	require.NoError(t, repo.Save(context.Background(), entry))
	return entry
}

func TestGormOutboxRepository_Claiming(t *testing.T) {
	db := newOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	older := saveEntry(t, repo, func(e *shared.OutboxEntry) { e.CreatedAt = e.CreatedAt.Add(-time.Minute) })
	newer := saveEntry(t, repo, nil)
	sent := saveEntry(t, repo, func(e *shared.OutboxEntry) { e.MarkSent() })

	pending, err := repo.FindPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, older.ID, pending[0].ID)

	claimed, err := repo.MarkProcessing(ctx, []uuid.UUID{older.ID, newer.ID, sent.ID})
	require.NoError(t, err)
	assert.Len(t, claimed, 2)
	for _, e := range claimed {
		assert.Equal(t, shared.OutboxStatusProcessing, e.Status)
	}

	again, err := repo.MarkProcessing(ctx, []uuid.UUID{older.ID})
	require.NoError(t, err)
	assert.Empty(t, again)

	none, err := repo.MarkProcessing(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGormOutboxRepository_RetryAndDeadLetters(t *testing.T) {
	db := newOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	entry := saveEntry(t, repo, nil)
	entry.MarkFailed("broker unavailable")
	require.NoError(t, repo.Update(ctx, entry))

	due, err := repo.FindRetryable(ctx, time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "broker unavailable", due[0].LastError)
	assert.Equal(t, 1, due[0].RetryCount)

	notYet, err := repo.FindRetryable(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, notYet)

	for !entry.IsDead() {
		entry.MarkFailed("broker unavailable")
	}
	require.NoError(t, repo.Update(ctx, entry))

	dead, err := repo.FindDead(ctx, 10)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, entry.ID, dead[0].ID)
}

func TestGormOutboxRepository_CleanupAndCounts(t *testing.T) {
	db := newOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	saveEntry(t, repo, nil)
	saveEntry(t, repo, func(e *shared.OutboxEntry) {
		e.MarkSent()
		processed := time.Now().Add(-10 * 24 * time.Hour)
		e.ProcessedAt = &processed
	})
	saveEntry(t, repo, func(e *shared.OutboxEntry) { e.MarkSent() })

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[shared.OutboxStatusPending])
	assert.Equal(t, int64(2), counts[shared.OutboxStatusSent])

	deleted, err := repo.DeleteSentBefore(ctx, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	counts, err = repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[shared.OutboxStatusSent])
}
