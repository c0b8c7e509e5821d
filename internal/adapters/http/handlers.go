package web

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"fitclub/internal/adapters/http/middleware"
	"fitclub/internal/application/orchestrators"
	"fitclub/internal/domain/session"
)

// handleHome renders the role picker.
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "home.html", map[string]any{
		"Welcome": template.HTML(s.welcome),
		"Roles":   session.ValidRoles,
	})
}

// loginRole reads {role} from the path; ok is false for an unknown role.
func loginRole(r *http.Request) (string, bool) {
	role := strings.ToLower(r.PathValue("role"))
	return role, session.IsValidRole(role)
}

// handleLoginPage handles GET /ui/login/{role}
func (s *server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	role, ok := loginRole(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{"Role": role})
}

// handleLogin handles POST /ui/login/{role}
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	role, ok := loginRole(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		BrowserID: middleware.BrowserID(r.Context()),
		Role:      role,
		Email:     email,
		Password:  r.FormValue("password"),
	}, orchestrators.LoginDeps{
		API:      s.api,
		Sessions: s.sessions,
	})
	if errors.Is(err, orchestrators.ErrSessionNotPersisted) {
		internalError(w, err)
		return
	}
	if err != nil {
		renderTemplate(w, r, "login.html", map[string]any{
			"Role":  role,
			"Email": strings.TrimSpace(email),
			"Error": orchestrators.LoginMessage(err),
		})
		return
	}
	http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
}

// handleSignupPage handles GET /ui/signup
func (s *server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "signup.html", map[string]any{"Form": orchestrators.RegisterMemberInput{}})
}

// handleSignup handles POST /ui/signup
func (s *server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RegisterMemberInput{
		Name:     r.FormValue("name"),
		DOB:      r.FormValue("dob"),
		Gender:   r.FormValue("gender"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
	}
	msg, err := orchestrators.ExecuteRegisterMember(r.Context(), input, orchestrators.RegisterMemberDeps{API: s.api})
	data := map[string]any{"Form": input}
	if err != nil {
		data["Error"] = orchestrators.ResultMessage(err)
	} else {
		data["Result"] = msg
		data["Form"] = orchestrators.RegisterMemberInput{}
	}
	renderTemplate(w, r, "signup.html", data)
}

// handleLogout handles POST /ui/logout
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteLogout(r.Context(), middleware.BrowserID(r.Context()), s.sessions); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/", http.StatusSeeOther)
}
