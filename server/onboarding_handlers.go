package server

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/go-onboarding-server/identity"
	"github.com/jrsteele09/go-onboarding-server/internal/utils"
	"github.com/jrsteele09/go-onboarding-server/onboarding"
	"github.com/jrsteele09/go-onboarding-server/server/ui"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/token"
	"github.com/jrsteele09/go-onboarding-server/tokens"
	"github.com/rs/zerolog"
)

var fieldLabels = map[onboarding.Field]string{
	onboarding.FieldGivenName:           "Given Name",
	onboarding.FieldFamilyName:          "Last Name",
	onboarding.FieldVillageNeighborhood: "Village or Neighborhood",
	onboarding.FieldEmail:               "Email",
}

type FieldView struct {
	Name      string
	Label     string
	InputType string
	Value     string
	Error     string
}

// OnboardingPageData contains data for rendering the onboarding form
type OnboardingPageData struct {
	AppName     string
	PhoneNumber string
	Fields      []FieldView
	Submit      ui.Button
}

func fieldView(field onboarding.Field, state onboarding.FormState) FieldView {
	inputType := "text"
	if field == onboarding.FieldEmail {
		inputType = "email"
	}
	return FieldView{
		Name:      string(field),
		Label:     fieldLabels[field],
		InputType: inputType,
		Value:     state.Values.Value(field),
		Error:     state.Error(field),
	}
}

func submitButton(state onboarding.FormState) ui.Button {
	return ui.Button{
		Primary:  true,
		Label:    "Submit",
		Type:     "submit",
		ID:       "submit",
		Disabled: !state.Valid,
	}
}

func (s *Server) onboardingPageData(state onboarding.FormState, auth identity.AuthState) OnboardingPageData {
	data := OnboardingPageData{
		AppName:     s.config.GetAppName(),
		PhoneNumber: utils.Value(auth.PhoneNumber),
		Submit:      submitButton(state),
	}
	for _, field := range onboarding.Fields {
		data.Fields = append(data.Fields, fieldView(field, state))
	}
	return data
}

// gatedRequest is the per-request session plumbing shared by the gated pages.
type gatedRequest struct {
	store     tokens.Store
	validator token.Validator
	navigator *httpNavigator
	state     session.State
	auth      identity.AuthState
}

// enforceGate runs the session gate for the request. It returns false when the gate
// has already answered the request.
func (s *Server) enforceGate(w http.ResponseWriter, r *http.Request) (*gatedRequest, bool) {
	store := s.tokenStore(w, r)
	g := &gatedRequest{
		store:     store,
		validator: s.tokenValidator(store),
		navigator: newHTTPNavigator(w, r),
	}
	gate := session.NewGate(s.authn.ForRequest(w, r), g.validator, g.store, g.navigator, session.WithEntryRoute(RouteIndex))
	g.state, g.auth = gate.Enforce(r.Context())
	s.metrics.ObserveGate(g.state.String())

	switch g.state {
	case session.Initializing:
		w.WriteHeader(http.StatusNoContent)
		return g, false
	case session.AuthenticatedValid:
		return g, true
	}
	return g, false
}

// IndexHandler renders the entry page
func (s *Server) IndexHandler() (http.HandlerFunc, error) {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
			"Error":   r.URL.Query().Get("error"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("index render failed")
		}
	}, nil
}

func (s *Server) OnboardingGetHandler() (http.HandlerFunc, error) {
	tmpl, err := ParseTemplate("onboarding.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := s.enforceGate(w, r)
		if !ok {
			return
		}
		s.renderOnboarding(w, r, tmpl, http.StatusOK, s.onboardingPageData(onboarding.BlankFormState(), g.auth))
	}, nil
}

// OnboardingPostHandler validates the posted form and hands a valid one to the submission flow.
func (s *Server) OnboardingPostHandler() (http.HandlerFunc, error) {
	tmpl, err := ParseTemplate("onboarding.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := s.enforceGate(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		formState := onboarding.EvaluateForm(onboarding.FormFromValues(r.PostForm))
		if !formState.Valid {
			s.renderOnboarding(w, r, tmpl, http.StatusUnprocessableEntity, s.onboardingPageData(formState, g.auth))
			return
		}

		flow := onboarding.NewFlow(onboarding.Deps{
			Factory:   s.factory,
			Validator: g.validator,
			Store:     g.store,
			Navigator: g.navigator,
			Table:     s.config.GetProfileTable(),
			NextRoute: RouteProposals,
		})
		outcome := flow.Submit(r.Context(), formState.Values, g.auth.UserID, g.auth.PhoneNumber)
		s.metrics.ObserveSubmission(string(outcome))

		if !g.navigator.navigated() {
			// Skipped submissions leave the user on the form with their values.
			s.renderOnboarding(w, r, tmpl, http.StatusOK, s.onboardingPageData(formState, g.auth))
		}
	}, nil
}

func (s *Server) renderOnboarding(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data OnboardingPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("onboarding render failed")
	}
}

// ValidateFieldHandler answers the onBlur check of a single input with its error fragment.
// The submit button is swapped out of band so it follows the validity of the whole form.
func (s *Server) ValidateFieldHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("field_error.html")
	if err != nil {
		panic("Failed to parse field error template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		field := onboarding.Field(r.PostForm.Get("field"))
		if _, known := fieldLabels[field]; !known {
			http.Error(w, "unknown field", http.StatusBadRequest)
			return
		}

		formState := onboarding.EvaluateForm(onboarding.FormFromValues(r.PostForm))
		data := map[string]interface{}{
			"Field":  fieldView(field, formState),
			"Submit": submitButton(formState),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "field_error", data); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("field error render failed")
		}
	}
}

func (s *Server) ProposalsHandler() (http.HandlerFunc, error) {
	tmpl, err := ParseTemplate("proposals.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.enforceGate(w, r); !ok {
			return
		}
		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("proposals render failed")
		}
	}, nil
}
