package service

import (
	"github.com/panelkit/admin-console/internal/core/domain"
)

// Outcome is the route guard verdict for one navigation attempt.
type Outcome string

const (
	OutcomeLoading         Outcome = "loading"
	OutcomeRedirectLogin   Outcome = "redirect_login"
	OutcomeForbidden       Outcome = "forbidden"
	OutcomeFallback        Outcome = "fallback"
	OutcomeRedirectDefault Outcome = "redirect_default"
	OutcomeRender          Outcome = "render"
)

// RouteRequest describes a navigation attempt and the route's role annotations.
// A non-nil RequiredRoles is enforced even when empty, which then denies everyone.
type RouteRequest struct {
	Path          string
	RequiredRole  domain.Role
	RequiredRoles []domain.Role
	HasFallback   bool
}

// Decision is what the presentation layer should do. Location is set for
// redirects; From carries the originally requested path on login redirects.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Location string  `json:"location,omitempty"`
	From     string  `json:"from,omitempty"`
}

// RouteGuard decides, per navigation, whether a protected view may render.
type RouteGuard struct {
	authz *Authorizer
}

func NewRouteGuard(authz *Authorizer) *RouteGuard {
	return &RouteGuard{authz: authz}
}

// Decide evaluates, in order: session settled, authenticated, the single
// required role, the required role set, then the menu whitelist.
func (g *RouteGuard) Decide(sess domain.Session, req RouteRequest) Decision {
	// 1. Session still loading: never redirect.
	if sess.IsLoading() {
		return Decision{Outcome: OutcomeLoading}
	}

	// 2. Anonymous: go to login and remember where we were headed.
	if !sess.IsAuthenticated() {
		return Decision{Outcome: OutcomeRedirectLogin, Location: domain.PathLogin, From: req.Path}
	}

	role := sess.Role()

	// 3. Explicit single-role annotation.
	if req.RequiredRole != "" && !g.authz.HasRole(role, req.RequiredRole) {
		return g.denied(req)
	}

	// 4. Explicit role-set annotation, checked independently of step 3.
	if req.RequiredRoles != nil && !g.authz.HasAnyRole(role, req.RequiredRoles...) {
		return g.denied(req)
	}

	// 5. Menu whitelist: silently send the user home.
	if !g.authz.HasRoute(role, req.Path) {
		return Decision{Outcome: OutcomeRedirectDefault, Location: domain.PathDashboard}
	}

	return Decision{Outcome: OutcomeRender}
}

func (g *RouteGuard) denied(req RouteRequest) Decision {
	if req.HasFallback {
		return Decision{Outcome: OutcomeFallback}
	}
	return Decision{Outcome: OutcomeForbidden}
}
