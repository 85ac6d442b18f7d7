// Package authz consolidates every role- and ownership-based access
// decision into one policy function, so the rules are testable without
// routing or storage.
package authz

import "inkwell/internal/models"

// Action names a mutation gated by the policy.
type Action string

const (
	ActionCreatePost Action = "post.create"
	ActionEditPost   Action = "post.edit"
	ActionDeletePost Action = "post.delete"
	ActionComment    Action = "comment.create"
	ActionToggleLike Action = "like.toggle"
	ActionModerate   Action = "moderate"
)

// Actor is the authenticated (or anonymous) principal a request acts as.
type Actor struct {
	Authenticated bool
	UserID        uint
	Role          models.Role
	IsStaff       bool
}

// ActorFor builds an Actor from a loaded user record.
func ActorFor(u *models.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{
		Authenticated: true,
		UserID:        u.ID,
		Role:          u.RoleOf(),
		IsStaff:       u.IsStaff,
	}
}

// Decision is the policy outcome for one (actor, action, resource) triple.
type Decision int

const (
	// Allow grants the action.
	Allow Decision = iota
	// DenyLogin means the actor must authenticate first; handlers
	// translate this into a redirect to the login page.
	DenyLogin
	// DenyForbidden is a hard 403: wrong role or wrong owner.
	DenyForbidden
)

// Can evaluates the access policy. ownerID is the owning user of the
// target post and is ignored for actions that have no resource. Role is
// checked before ownership; both must pass for edit/delete. The staff
// flag is a separate administrative axis and never substitutes for the
// author role (or vice versa).
func Can(actor Actor, action Action, ownerID uint) Decision {
	switch action {
	case ActionCreatePost:
		if !actor.Authenticated {
			return DenyForbidden
		}
		if actor.Role != models.RoleAuthor {
			return DenyForbidden
		}
		return Allow

	case ActionEditPost, ActionDeletePost:
		if !actor.Authenticated || actor.Role != models.RoleAuthor {
			return DenyForbidden
		}
		if actor.UserID != ownerID {
			return DenyForbidden
		}
		return Allow

	case ActionComment, ActionToggleLike:
		if !actor.Authenticated {
			return DenyLogin
		}
		return Allow

	case ActionModerate:
		if !actor.Authenticated || !actor.IsStaff {
			return DenyForbidden
		}
		return Allow
	}
	return DenyForbidden
}
