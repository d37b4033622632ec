package repository

import (
	"sync"
	"testing"
	"time"

	"admitiq/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SwapLastMessage(t *testing.T) {
	repo := NewSessionRepository(nil)
	s := repo.Create(models.RoleStudent)

	prev, ok := repo.SwapLastMessage(s.ID, models.RoleStudent, "first")
	assert.False(t, ok)
	assert.Empty(t, prev)

	prev, ok = repo.SwapLastMessage(s.ID, models.RoleStudent, "second")
	assert.True(t, ok)
	assert.Equal(t, "first", prev)

	last, ok := repo.LastMessage(s.ID)
	assert.True(t, ok)
	assert.Equal(t, "second", last)
}

func TestSessionRepository_UnknownSessionIsCreated(t *testing.T) {
	repo := NewSessionRepository(nil)
	id := uuid.New()

	_, ok := repo.LastMessage(id)
	assert.False(t, ok)

	_, ok = repo.SwapLastMessage(id, models.RoleAdmin, "hello")
	assert.False(t, ok)

	s, ok := repo.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, s.Role)
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepository_Sweep(t *testing.T) {
	repo := NewSessionRepository(nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	stale := repo.Create(models.RoleStudent)
	now = now.Add(90 * time.Minute)
	fresh := repo.Create(models.RoleStudent)
	now = now.Add(time.Minute)

	removed := repo.Sweep(time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := repo.Get(stale.ID)
	assert.False(t, ok)
	_, ok = repo.Get(fresh.ID)
	assert.True(t, ok)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(nil)
	s := repo.Create(models.RoleStudent)

	repo.Delete(s.ID)
	_, ok := repo.Get(s.ID)
	assert.False(t, ok)
	assert.Zero(t, repo.Count())
}

func TestSessionRepository_ConcurrentAccess(t *testing.T) {
	repo := NewSessionRepository(nil)
	ids := make([]uuid.UUID, 4)
	for i := range ids {
		ids[i] = repo.Create(models.RoleStudent).ID
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := ids[i%len(ids)]
			for j := 0; j < 100; j++ {
				repo.SwapLastMessage(id, models.RoleStudent, "msg")
				repo.LastMessage(id)
				repo.Sweep(time.Hour)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(ids), repo.Count())
}
