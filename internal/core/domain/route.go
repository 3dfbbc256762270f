package domain

// CatchAllPath matches any path no other route claims.
const CatchAllPath = "/:pathMatch(.*)*"

type RoutePolicy struct {
	RequiresAuth bool `json:"requires_auth"`
	RequiredRole Role `json:"required_role,omitempty"`
}

type Route struct {
	Path     string
	Name     string
	View     string
	Title    string
	Redirect string
	Policy   RoutePolicy
}

func (r Route) IsCatchAll() bool {
	return r.Path == CatchAllPath
}

type DecisionReason string

const (
	ReasonAllowed              DecisionReason = "allowed"
	ReasonNoToken              DecisionReason = "no_token"
	ReasonRoleMismatch         DecisionReason = "role_mismatch"
	ReasonAlreadyAuthenticated DecisionReason = "already_authenticated"
)

// Decision is the outcome of one guard invocation.
type Decision struct {
	Allow    bool
	Redirect string
	Reason   DecisionReason
}

func Allow() Decision {
	return Decision{Allow: true, Reason: ReasonAllowed}
}

func RedirectTo(path string, reason DecisionReason) Decision {
	return Decision{Redirect: path, Reason: reason}
}
