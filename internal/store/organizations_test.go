package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minipm/internal/types"
)

func TestResolveOrganization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acme := seedOrg(t, s, "Acme Corp", "acme")
	seedOrg(t, s, "Twin", "twin-1")
	seedOrg(t, s, "Twin", "twin-2")

	t.Run("by slug", func(t *testing.T) {
		o, err := s.ResolveOrganization(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, o.ID)
	})

	t.Run("by name", func(t *testing.T) {
		o, err := s.ResolveOrganization(ctx, "Acme Corp")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, o.ID)
	})

	t.Run("slug wins over ambiguous name", func(t *testing.T) {
		o, err := s.ResolveOrganization(ctx, "twin-2")
		require.NoError(t, err)
		assert.Equal(t, "twin-2", o.Slug)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		_, err := s.ResolveOrganization(ctx, "Twin")
		assert.ErrorIs(t, err, ErrAmbiguous)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := s.ResolveOrganization(ctx, "initech")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateOrganization_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	seedOrg(t, s, "Acme", "acme")

	err := s.CreateOrganization(context.Background(), &types.Organization{Name: "Other", Slug: "acme"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestListOrganizations_OrderedByName(t *testing.T) {
	s := newTestStore(t)
	seedOrg(t, s, "Zeta", "zeta")
	seedOrg(t, s, "Alpha", "alpha")

	orgs, err := s.ListOrganizations(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "Alpha", orgs[0].Name)
	assert.Equal(t, "Zeta", orgs[1].Name)
}

func TestDeleteOrganization_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	org := seedOrg(t, s, "Acme", "acme")
	p := seedProject(t, s, org, "Launch")
	task := seedTask(t, s, p, "Press kit", types.TaskTodo)
	require.NoError(t, s.CreateComment(ctx, &types.Comment{TaskID: task.ID, Author: "kim", Content: "draft attached"}))

	require.NoError(t, s.DeleteOrganization(ctx, org.ID))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM task_comments`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, s.DeleteOrganization(ctx, org.ID), ErrNotFound)
}
