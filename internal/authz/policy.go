// Package authz holds the authorization policy: pure decision functions with
// no store access. Given a requester identity, an action and (for ownership
// checks) the target movie, Decide returns an allow or a deny with a reason.
package authz

import (
	"github.com/isdelr/streamy-api/internal/apperr"
	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/models"
)

// Action constants define the operations the policy rules on.
const (
	ActionCreateMovie    = "movie:create"
	ActionUpdateMovie    = "movie:update"
	ActionDeleteMovie    = "movie:delete"
	ActionListMovies     = "movie:list"
	ActionCreateLike     = "like:create"
	ActionRemoveLike     = "like:remove"
	ActionListLikes      = "like:list"
	ActionRegister       = "account:register"
	ActionUpdateAccount  = "account:update"
	ActionChangePassword = "account:change_password"
	ActionDeleteAccount  = "account:delete"
	ActionViewSelf       = "account:me"
	ActionListUsers      = "account:list"
)

// Effect is the outcome class of a decision. A denial distinguishes "no
// identity where one is required" from "identity present but lacking
// permission" so the transport can map them to different failures.
type Effect int

const (
	Allow Effect = iota
	DenyUnauthenticated
	DenyForbidden
)

// Decision is the result of evaluating a policy rule.
type Decision struct {
	Effect Effect
	Reason string
}

// Allowed reports whether the action may proceed.
func (d Decision) Allowed() bool {
	return d.Effect == Allow
}

// Err converts a denial into its typed error, or nil when allowed.
func (d Decision) Err() error {
	switch d.Effect {
	case DenyUnauthenticated:
		return apperr.Unauthenticated(d.Reason)
	case DenyForbidden:
		return apperr.Forbidden(d.Reason)
	default:
		return nil
	}
}

func allow() Decision {
	return Decision{Effect: Allow}
}

func denyAnonymous(reason string) Decision {
	return Decision{Effect: DenyUnauthenticated, Reason: reason}
}

func deny(reason string) Decision {
	return Decision{Effect: DenyForbidden, Reason: reason}
}

// Decide evaluates the policy for one action. target is the loaded movie for
// the ownership-checked actions and nil otherwise. There is no permission
// hierarchy: the only privileged role is the superuser flag, and the only
// ownership rule is equality with the movie's posted_by reference.
func Decide(requester auth.Identity, action string, target *models.Movie) Decision {
	switch action {
	case ActionCreateMovie:
		if requester.IsAnonymous() {
			return denyAnonymous("you must be logged in to add movies")
		}
		user, _ := requester.User()
		if !user.IsSuperuser {
			return deny("only admin users can add movies")
		}
		return allow()

	case ActionUpdateMovie, ActionDeleteMovie:
		// Anonymous has no user ID, so the equality check always fails
		// for it; ownership denials are forbidden, not unauthenticated.
		if target == nil || target.PostedBy != requester.UserID() {
			if action == ActionDeleteMovie {
				return deny("not permitted to delete movies")
			}
			return deny("not permitted to update movies")
		}
		return allow()

	case ActionCreateLike:
		if requester.IsAnonymous() {
			return denyAnonymous("you must be logged in to like movies")
		}
		return allow()

	case ActionRemoveLike:
		if requester.IsAnonymous() {
			return denyAnonymous("you must be logged in to update likes")
		}
		return allow()

	case ActionUpdateAccount, ActionChangePassword, ActionDeleteAccount:
		if requester.IsAnonymous() {
			return denyAnonymous("you must be logged in to manage your account")
		}
		return allow()

	case ActionViewSelf:
		if requester.IsAnonymous() {
			return denyAnonymous("not logged in")
		}
		return allow()

	case ActionRegister, ActionListMovies, ActionListLikes, ActionListUsers:
		// Public operations. Listing users is public in the current
		// schema as well; see Resolver.Users.
		return allow()
	}

	return deny("unknown action")
}
