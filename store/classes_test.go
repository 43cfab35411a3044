package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/flashcard-tracker/flashcard-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "classes@x.com")

	t.Run("Create and fetch", func(t *testing.T) {
		k := mustClass(t, s, "Period1", u)

		got, err := s.GetClassByPublicID(ctx, k.PublicID)
		require.NoError(t, err)
		assert.Equal(t, k.ID, got.ID)
		assert.True(t, got.VerifyPassword("class-pass"))
		assert.False(t, got.VerifyPassword("password"))
	})

	t.Run("Duplicate name", func(t *testing.T) {
		mustClass(t, s, "Period2", u)
		err := s.CreateClass(ctx, models.NewClass("Period2", "hash", u.ID))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("Missing owner", func(t *testing.T) {
		err := s.CreateClass(ctx, models.NewClass("Orphans", "hash", 9999))
		assert.ErrorIs(t, err, ErrMissingReference)
	})

	t.Run("Change password", func(t *testing.T) {
		k := mustClass(t, s, "Period3", u)
		require.NoError(t, k.SetPassword("rotated"))
		require.NoError(t, s.UpdateClass(ctx, k))

		got, err := s.GetClass(ctx, k.ID)
		require.NoError(t, err)
		assert.True(t, got.VerifyPassword("rotated"))
	})
}

func TestMembership(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	owner := mustUser(t, s, "instructor@x.com")
	student := mustUser(t, s, "student@x.com")
	k := mustClass(t, s, "Period1", owner)

	isMember := func() bool {
		ok, err := s.IsMember(ctx, k.ID, student.ID)
		require.NoError(t, err)
		return ok
	}

	assert.False(t, isMember())

	require.NoError(t, s.AddMember(ctx, k.ID, student.ID))
	assert.True(t, isMember())

	t.Run("Adding twice keeps one row", func(t *testing.T) {
		require.NoError(t, s.AddMember(ctx, k.ID, student.ID))
		members, err := s.ClassMembers(ctx, k.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("Owner is not implicitly a member", func(t *testing.T) {
		ok, err := s.IsMember(ctx, k.ID, owner.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Missing user", func(t *testing.T) {
		assert.ErrorIs(t, s.AddMember(ctx, k.ID, 9999), ErrMissingReference)
	})

	t.Run("Missing class", func(t *testing.T) {
		assert.ErrorIs(t, s.AddMember(ctx, 9999, student.ID), ErrMissingReference)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, s.RemoveMember(ctx, k.ID, student.ID))
		assert.False(t, isMember())

		// Removing a non-member is not an error
		assert.NoError(t, s.RemoveMember(ctx, k.ID, student.ID))

		classes, err := s.UserClasses(ctx, student.ID)
		require.NoError(t, err)
		assert.Empty(t, classes)
	})
}

func TestSharing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "share@x.com")
	d := mustDeck(t, s, "Spanish", u)
	c1 := mustCard(t, s, "hola", d, u)
	c2 := mustCard(t, s, "adios", d, u)
	k1 := mustClass(t, s, "Period1", u)
	k2 := mustClass(t, s, "Period2", u)

	require.NoError(t, s.ShareCard(ctx, k1.ID, c1.ID))
	require.NoError(t, s.ShareCard(ctx, k1.ID, c2.ID))
	require.NoError(t, s.ShareCard(ctx, k2.ID, c1.ID))
	require.NoError(t, s.ShareCard(ctx, k2.ID, c1.ID))

	cards, err := s.ClassCards(ctx, k1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c1.ID, c2.ID}, ids(cards))

	classes, err := s.CardClasses(ctx, c1.ID)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, k1.ID, classes[0].ID)
	assert.Equal(t, k2.ID, classes[1].ID)

	require.NoError(t, s.UnshareCard(ctx, k1.ID, c1.ID))
	shared, err := s.IsShared(ctx, k1.ID, c1.ID)
	require.NoError(t, err)
	assert.False(t, shared)

	shared, err = s.IsShared(ctx, k2.ID, c1.ID)
	require.NoError(t, err)
	assert.True(t, shared)

	t.Run("Missing card", func(t *testing.T) {
		assert.ErrorIs(t, s.ShareCard(ctx, k1.ID, 9999), ErrMissingReference)
	})
}

func TestMembershipAndSharingAreIndependent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "indep@x.com")
	d := mustDeck(t, s, "Spanish", u)
	c := mustCard(t, s, "hola", d, u)
	k := mustClass(t, s, "Period1", u)

	require.NoError(t, s.AddMember(ctx, k.ID, u.ID))
	require.NoError(t, s.ShareCard(ctx, k.ID, c.ID))

	require.NoError(t, s.RemoveMember(ctx, k.ID, u.ID))
	shared, err := s.IsShared(ctx, k.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, shared)

	require.NoError(t, s.AddMember(ctx, k.ID, u.ID))
	require.NoError(t, s.UnshareCard(ctx, k.ID, c.ID))
	member, err := s.IsMember(ctx, k.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestDeleteClass(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "delclass@x.com")
	student := mustUser(t, s, "delclass2@x.com")
	d := mustDeck(t, s, "Spanish", u)
	c := mustCard(t, s, "hola", d, u)
	k := mustClass(t, s, "Period1", u)
	require.NoError(t, s.AddMember(ctx, k.ID, student.ID))
	require.NoError(t, s.ShareCard(ctx, k.ID, c.ID))

	require.NoError(t, s.DeleteClass(ctx, k.ID))

	_, err := s.GetClass(ctx, k.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	classes, err := s.UserClasses(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, classes)

	classes, err = s.CardClasses(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, classes)

	_, err = s.GetUser(ctx, student.ID)
	assert.NoError(t, err)
	_, err = s.GetCard(ctx, c.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeleteClass(ctx, k.ID), ErrNotFound)
}

func TestLoadOwners(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "owners@x.com")
	d := mustDeck(t, s, "Spanish", u)
	k := mustClass(t, s, "Period1", u)

	require.NoError(t, s.LoadDeckOwner(ctx, d))
	assert.Equal(t, fmt.Sprintf("<ID: %d, Name: Spanish, Owner: First Last>", d.ID), d.String())

	require.NoError(t, s.LoadClassOwner(ctx, k))
	assert.Equal(t, fmt.Sprintf("<ID: %d, Name: Period1, Owner: First Last>", k.ID), k.String())
}
