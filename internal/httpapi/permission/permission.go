package permission

import "net/http"

// Actor is the identity attached to an incoming request. The zero value
// (Anonymous true) represents an unauthenticated request.
type Actor struct {
	ID        string
	Username  string
	Role      string
	IsStaff   bool
	Anonymous bool
}

// Roles stored on the user record.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// AdminTier reports whether the actor may act with admin privileges:
// the admin role or the staff flag.
func (a Actor) AdminTier() bool {
	if a.Anonymous {
		return false
	}
	return a.Role == RoleAdmin || a.IsStaff
}

// Moderator reports whether the actor holds the moderator role.
func (a Actor) Moderator() bool {
	return !a.Anonymous && a.Role == RoleModerator
}

// Decision is the result of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOnly governs user management endpoints: only admin-tier actors get
// through, read methods included.
func AdminOnly(actor Actor, method string) Decision {
	if actor.AdminTier() {
		return allow()
	}
	return deny("admin access required")
}

// AdminOrReadOnly governs category, genre and title endpoints: anyone may
// read, only admin-tier actors may write.
func AdminOrReadOnly(actor Actor, method string) Decision {
	if SafeMethod(method) {
		return allow()
	}
	if actor.AdminTier() {
		return allow()
	}
	return deny("admin access required for write operations")
}

// OwnerOrModerator is the collection-level check for review and comment
// endpoints. Authenticated actors of any role pass; the object-level check
// runs later, once the target has been resolved. Anonymous actors are
// limited to safe methods.
func OwnerOrModerator(actor Actor, method string) Decision {
	if actor.Anonymous {
		if SafeMethod(method) {
			return allow()
		}
		return deny("authentication required for write operations")
	}
	return allow()
}

// OwnerOrModeratorObject is the object-level check for review and comment
// endpoints, evaluated only after the object has been confirmed to exist.
// Writes require the actor to be the object's author, a moderator or
// admin-tier.
func OwnerOrModeratorObject(actor Actor, method string, authorID string) Decision {
	if actor.Anonymous {
		if SafeMethod(method) {
			return allow()
		}
		return deny("authentication required for write operations")
	}
	if SafeMethod(method) {
		return allow()
	}
	if actor.ID == authorID || actor.Moderator() || actor.AdminTier() {
		return allow()
	}
	return deny("only the author or a moderator may modify this resource")
}
