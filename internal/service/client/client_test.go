package client

import (
	"context"
	"testing"

	"tripdesk-service/internal/domain/client"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	nextID int64
	byID   map[int64]client.Client
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[int64]client.Client)}
}

func (r *memRepo) Create(ctx context.Context, c *client.Client) error {
	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = *c
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id int64) (*client.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) FindAll(ctx context.Context) ([]client.Client, error) {
	var list []client.Client
	for _, c := range r.byID {
		list = append(list, c)
	}
	return list, nil
}

func (r *memRepo) Update(ctx context.Context, c *client.Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.byID[c.ID] = *c
	return nil
}

func newTestService() (*ClientService, *memRepo, *state.Store) {
	repo := newMemRepo()
	store := state.NewStore()
	return NewClientService(repo, store, zap.NewNop()), repo, store
}

func TestCreateClient(t *testing.T) {
	svc, _, store := newTestService()

	c, err := svc.CreateClient(context.Background(), &client.CreateClientRequest{
		FullName:    "Maria Souza",
		PhoneNumber: "+55 11 99999-0000",
		Email:       "maria@example.com",
		Tags:        []string{"vip"},
	})
	require.NoError(t, err)

	assert.NotZero(t, c.ID)
	assert.True(t, c.IsActive)
	assert.True(t, c.Email.Valid)
	assert.Equal(t, "maria@example.com", c.Email.String)
	assert.Len(t, store.Clients(), 1)
}

func TestCreateClientValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateClient(context.Background(), &client.CreateClientRequest{FullName: "Sem telefone"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.CreateClient(context.Background(), &client.CreateClientRequest{PhoneNumber: "+55"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestUpdateClientPartialPatch(t *testing.T) {
	svc, _, _ := newTestService()

	c, err := svc.CreateClient(context.Background(), &client.CreateClientRequest{
		FullName:    "Maria Souza",
		PhoneNumber: "+55 11 99999-0000",
		Notes:       "cliente antiga",
	})
	require.NoError(t, err)

	name := "Maria Souza Lima"
	inactive := false
	updated, err := svc.UpdateClient(context.Background(), c.ID, &client.UpdateClientRequest{
		FullName: &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Souza Lima", updated.FullName)
	assert.False(t, updated.IsActive)
	// Unsupplied fields are untouched.
	assert.Equal(t, "+55 11 99999-0000", updated.PhoneNumber)
	assert.Equal(t, "cliente antiga", updated.Notes.String)
}

func TestUpdateClientNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	name := "ghost"
	_, err := svc.UpdateClient(context.Background(), 404, &client.UpdateClientRequest{FullName: &name})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
