package authz

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCan_CreatePost(t *testing.T) {
	author := Actor{Authenticated: true, UserID: 1, Role: models.RoleAuthor}
	reader := Actor{Authenticated: true, UserID: 2, Role: models.RoleReader}
	anonymous := Actor{}

	assert.Equal(t, Allow, Can(author, ActionCreatePost, 0))
	assert.Equal(t, DenyForbidden, Can(reader, ActionCreatePost, 0))
	assert.Equal(t, DenyForbidden, Can(anonymous, ActionCreatePost, 0))
}

func TestCan_EditAndDelete(t *testing.T) {
	owner := Actor{Authenticated: true, UserID: 1, Role: models.RoleAuthor}
	otherAuthor := Actor{Authenticated: true, UserID: 2, Role: models.RoleAuthor}
	readerOwner := Actor{Authenticated: true, UserID: 1, Role: models.RoleReader}

	for _, action := range []Action{ActionEditPost, ActionDeletePost} {
		assert.Equal(t, Allow, Can(owner, action, 1))
		// Role passes but ownership fails: hard 403, never a silent no-op.
		assert.Equal(t, DenyForbidden, Can(otherAuthor, action, 1))
		// Ownership alone is not enough without the author role.
		assert.Equal(t, DenyForbidden, Can(readerOwner, action, 1))
		assert.Equal(t, DenyForbidden, Can(Actor{}, action, 1))
	}
}

func TestCan_CommentAndLike(t *testing.T) {
	reader := Actor{Authenticated: true, UserID: 3, Role: models.RoleReader}
	anonymous := Actor{}

	for _, action := range []Action{ActionComment, ActionToggleLike} {
		assert.Equal(t, Allow, Can(reader, action, 0))
		// Anonymous gets a login redirect, not a 403.
		assert.Equal(t, DenyLogin, Can(anonymous, action, 0))
	}
}

func TestCan_Moderate(t *testing.T) {
	staff := Actor{Authenticated: true, UserID: 1, Role: models.RoleReader, IsStaff: true}
	staffAuthor := Actor{Authenticated: true, UserID: 2, Role: models.RoleAuthor, IsStaff: true}
	plainAuthor := Actor{Authenticated: true, UserID: 3, Role: models.RoleAuthor}

	// Staff is an independent axis: any role can moderate with the flag,
	// and the author role never implies it.
	assert.Equal(t, Allow, Can(staff, ActionModerate, 0))
	assert.Equal(t, Allow, Can(staffAuthor, ActionModerate, 0))
	assert.Equal(t, DenyForbidden, Can(plainAuthor, ActionModerate, 0))
	assert.Equal(t, DenyForbidden, Can(Actor{}, ActionModerate, 0))
}

func TestActorFor(t *testing.T) {
	t.Run("nil user is anonymous", func(t *testing.T) {
		actor := ActorFor(nil)
		assert.False(t, actor.Authenticated)
		assert.Zero(t, actor.UserID)
	})

	t.Run("user without profile defaults to reader", func(t *testing.T) {
		actor := ActorFor(&models.User{ID: 7})
		assert.True(t, actor.Authenticated)
		assert.Equal(t, models.RoleReader, actor.Role)
	})

	t.Run("author profile carries through", func(t *testing.T) {
		u := &models.User{ID: 8, IsStaff: true, Profile: &models.Profile{Role: models.RoleAuthor}}
		actor := ActorFor(u)
		assert.Equal(t, models.RoleAuthor, actor.Role)
		assert.True(t, actor.IsStaff)
	})
}
