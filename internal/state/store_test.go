package state

import (
	"sync"
	"testing"

	"tripdesk-service/internal/domain/client"
	"tripdesk-service/internal/domain/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityReadsAreIsolated(t *testing.T) {
	store := NewStore()
	store.PutOpportunity(&opportunity.Opportunity{
		ID:    1,
		Title: "original",
		Tasks: []opportunity.Task{{ID: "t-1", Title: "tarefa"}},
	})

	got, ok := store.Opportunity(1)
	require.True(t, ok)

	// Mutating the copy never leaks back into the cache.
	got.Title = "mutated"
	got.Tasks[0].Title = "mutated"
	got.Tasks = append(got.Tasks, opportunity.Task{ID: "t-2"})

	fresh, ok := store.Opportunity(1)
	require.True(t, ok)
	assert.Equal(t, "original", fresh.Title)
	assert.Equal(t, "tarefa", fresh.Tasks[0].Title)
	assert.Len(t, fresh.Tasks, 1)
}

func TestOpportunitiesSortedByID(t *testing.T) {
	store := NewStore()
	store.SetOpportunities([]*opportunity.Opportunity{
		{ID: 3}, {ID: 1}, {ID: 2},
	})

	list := store.Opportunities()
	require.Len(t, list, 3)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)
	assert.Equal(t, int64(3), list[2].ID)
}

func TestPutOpportunityReplaces(t *testing.T) {
	store := NewStore()
	store.PutOpportunity(&opportunity.Opportunity{ID: 1, Title: "v1"})
	store.PutOpportunity(&opportunity.Opportunity{ID: 1, Title: "v2"})

	got, ok := store.Opportunity(1)
	require.True(t, ok)
	assert.Equal(t, "v2", got.Title)
	assert.Len(t, store.Opportunities(), 1)
}

func TestPutClientUpsert(t *testing.T) {
	store := NewStore()
	store.SetClients([]client.Client{{ID: 1, FullName: "a"}})

	store.PutClient(client.Client{ID: 1, FullName: "b"})
	store.PutClient(client.Client{ID: 2, FullName: "c"})

	clients := store.Clients()
	require.Len(t, clients, 2)
	assert.Equal(t, "b", clients[0].FullName)
	assert.Equal(t, "c", clients[1].FullName)
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()
	store.PutOpportunity(&opportunity.Opportunity{ID: 1})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.PutOpportunity(&opportunity.Opportunity{ID: 1, Temperature: 50})
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Opportunity(1)
			_ = store.Opportunities()
		}()
	}
	wg.Wait()

	_, ok := store.Opportunity(1)
	assert.True(t, ok)
}
