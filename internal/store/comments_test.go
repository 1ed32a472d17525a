package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minipm/internal/types"
)

func TestComments_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	org := seedOrg(t, s, "Acme", "acme")
	task := seedTask(t, s, seedProject(t, s, org, "Launch"), "Review", types.TaskTodo)

	first := &types.Comment{TaskID: task.ID, Author: "ana", Content: "first"}
	second := &types.Comment{TaskID: task.ID, Author: "bo", Content: "second"}
	require.NoError(t, s.CreateComment(ctx, first))
	require.NoError(t, s.CreateComment(ctx, second))

	list, err := s.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content, "comments are oldest first")

	first.Content = "first, edited"
	require.NoError(t, s.UpdateComment(ctx, first))
	got, err := s.GetComment(ctx, org.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first, edited", got.Content)

	require.NoError(t, s.DeleteComment(ctx, first.ID))
	_, err = s.GetComment(ctx, org.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetComment_OtherOrganization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acme := seedOrg(t, s, "Acme", "acme")
	globex := seedOrg(t, s, "Globex", "globex")
	task := seedTask(t, s, seedProject(t, s, acme, "Launch"), "Review", types.TaskTodo)
	c := &types.Comment{TaskID: task.ID, Author: "ana", Content: "private"}
	require.NoError(t, s.CreateComment(ctx, c))

	_, err := s.GetComment(ctx, globex.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateComment_RequiresAuthor(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateComment(context.Background(), &types.Comment{TaskID: 1, Content: "anon"})
	assert.EqualError(t, err, "Author is required")
}
