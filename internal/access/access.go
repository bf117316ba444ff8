// Package access decides, per page navigation, whether a request may go
// through or must be redirected.
package access

import (
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

type Action string

const (
	Allow    Action = "allow"
	Redirect Action = "redirect"
)

const LoginPath = "/auth/login"

var protectedPrefixes = []string{"/dashboard", "/appointments", "/profile", "/booking"}

var authPages = []string{"/auth/login", "/auth/register"}

type Request struct {
	HasToken bool
	// UserCookie is the raw profile cookie; it may be empty or malformed.
	UserCookie string
	Path       string
}

type Decision struct {
	Action   Action
	Location string
}

func allow() Decision { return Decision{Action: Allow} }

func redirect(to string) Decision { return Decision{Action: Redirect, Location: to} }

// Decide is a pure function of the request. A token with an unreadable
// profile cookie is let through; the API has the final word on it.
func Decide(req Request) Decision {
	path := req.Path
	if path == "" {
		path = "/"
	}

	if !req.HasToken {
		if isProtected(path) {
			return redirect(LoginPath)
		}
		return allow()
	}

	user, ok := session.ParseUserCookie(req.UserCookie)
	if !ok || !user.Role.Valid() {
		return allow()
	}
	own := user.Role.DashboardPath()

	if matchesAny(path, authPages) {
		return redirect(own)
	}

	if path == "/dashboard" || path == "/dashboard/" {
		return redirect(own)
	}

	if role, ok := dashboardRole(path); ok && role != user.Role {
		return redirect(own)
	}

	return allow()
}

func isProtected(path string) bool {
	return matchesAny(path, protectedPrefixes)
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// dashboardRole extracts the role segment of /dashboard/{role}[/...].
func dashboardRole(path string) (models.Role, bool) {
	rest, ok := strings.CutPrefix(path, "/dashboard/")
	if !ok {
		return "", false
	}
	seg, _, _ := strings.Cut(rest, "/")
	role := models.Role(seg)
	return role, role.Valid()
}
