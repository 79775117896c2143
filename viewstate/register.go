// file: viewstate/register.go
package viewstate

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"go-ballpark/api"
	"go-ballpark/logger"
	"go-ballpark/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// MinUsernameLength is the length at which availability is checked.
const MinUsernameLength = 4

// Fields with a server-side availability check.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// RegistrationAPI is the slice of the gateway the registration form uses.
type RegistrationAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// FieldCheck is the inline validation state of one field.
type FieldCheck struct {
	Value     string
	Checking  bool
	Available bool
	Error     string
}

// RegisterState is the registration form.
type RegisterState struct {
	Status
	Checks     map[string]FieldCheck
	Registered bool
}

// Check returns field's validation state.
func (s RegisterState) Check(field string) FieldCheck {
	return s.Checks[field]
}

// Register actions.
type (
	FieldInput  struct{ Field, Value, Error string }
	FieldResult struct {
		Field     string
		Available bool
		Error     string
	}
	Registered  struct{}
	SubmitStart struct{}
)

func (FieldInput) isAction()  {}
func (FieldResult) isAction() {}
func (Registered) isAction()  {}
func (SubmitStart) isAction() {}

func withCheck(checks map[string]FieldCheck, field string, fc FieldCheck) map[string]FieldCheck {
	out := make(map[string]FieldCheck, len(checks)+1)
	for k, v := range checks {
		out[k] = v
	}
	out[field] = fc
	return out
}

func reduceRegister(s RegisterState, a Action) RegisterState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	switch a := a.(type) {
	case FieldInput:
		s.Checks = withCheck(s.Checks, a.Field, FieldCheck{
			Value:    a.Value,
			Checking: a.Error == "",
			Error:    a.Error,
		})
	case FieldResult:
		fc := s.Checks[a.Field]
		fc.Checking = false
		fc.Available = a.Available
		fc.Error = a.Error
		s.Checks = withCheck(s.Checks, a.Field, fc)
	case Registered:
		s.Registered = true
	case SubmitStart:
		s.Registered = false
	default:
		return unhandled("Register", s, a)
	}
	return s
}

// Register drives the registration form and its debounced availability
// checks. A check result lands only if no newer input was made to the field.
type Register struct {
	*Container[RegisterState]
	api      RegistrationAPI
	debounce *Debouncer
}

// NewRegister creates the registration container. Checks run through
// debounce.
func NewRegister(api RegistrationAPI, debounce *Debouncer) *Register {
	return &Register{
		Container: NewContainer("Register", RegisterState{}, reduceRegister),
		api:       api,
		debounce:  debounce,
	}
}

func validateUsername(v string) string {
	switch {
	case v == "":
		return "Please enter a username."
	case !usernamePattern.MatchString(v):
		return "Usernames may contain only letters and numbers."
	case len(v) < MinUsernameLength:
		return "Usernames must be at least 4 characters."
	}
	return ""
}

func validateEmail(v string) string {
	switch {
	case v == "":
		return "Please enter an email address."
	case !emailPattern.MatchString(v):
		return "Please enter a valid email address."
	}
	return ""
}

// Input records a new value for field and schedules its availability check.
// Invalid values are reported at once and never checked.
func (r *Register) Input(field, value string) RegisterState {
	value = strings.TrimSpace(value)
	var (
		invalid string
		exists  func(context.Context, string) (bool, error)
		taken   string
	)
	switch field {
	case FieldUsername:
		invalid, exists, taken = validateUsername(value), r.api.UsernameExists, "This username is already taken."
	case FieldEmail:
		invalid, exists, taken = validateEmail(value), r.api.EmailExists, "This email is already registered."
	default:
		return r.State()
	}

	t := r.Begin("check:"+field, FieldInput{Field: field, Value: value, Error: invalid})
	if invalid != "" {
		r.debounce.Cancel(field)
		return r.State()
	}
	r.debounce.Schedule(field, func(ctx context.Context) {
		found, err := exists(ctx, value)
		switch {
		case api.IsStatus(err, http.StatusNotFound):
			r.Resolve(t, FieldResult{Field: field, Available: true})
		case err != nil:
			logger.Warn.Printf("[Register.Input] %s check: %v", field, err)
			r.Resolve(t, FieldResult{Field: field, Error: "Could not check availability."})
		case found:
			r.Resolve(t, FieldResult{Field: field, Error: taken})
		default:
			r.Resolve(t, FieldResult{Field: field, Available: true})
		}
	})
	return r.State()
}

// Submit validates the whole form and registers the account.
func (r *Register) Submit(ctx context.Context, req models.RegisterRequest, confirm string) RegisterState {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Nickname = strings.TrimSpace(req.Nickname)
	req.Name = strings.TrimSpace(req.Name)
	r.Dispatch(SubmitStart{})

	msg := validateUsername(req.Username)
	if msg == "" {
		msg = validateEmail(req.Email)
	}
	switch {
	case msg != "":
	case req.Password == "":
		msg = "Please enter a password."
	case req.Password != confirm:
		msg = "The passwords do not match."
	case req.Nickname == "":
		msg = "Please enter a nickname."
	}
	if msg == "" {
		st := r.State()
		for _, field := range []string{FieldUsername, FieldEmail} {
			fc := st.Check(field)
			if !fc.Checking && fc.Error != "" && fc.Value == fieldValue(req, field) {
				msg = fc.Error
				break
			}
		}
	}
	if msg != "" {
		return r.Dispatch(SetMessage{Message: msg})
	}

	r.Dispatch(ActionStart{})
	body, err := r.api.Register(ctx, req)
	if err != nil {
		logger.Warn.Printf("[Register.Submit] %s: %v", req.Username, err)
		return r.Dispatch(ActionDone{}, SetMessage{Message: messageFor(err, "Registration failed.", nil)})
	}
	r.debounce.Cancel(FieldUsername)
	r.debounce.Cancel(FieldEmail)
	logger.Info.Printf("[Register.Submit] %s registered", req.Username)
	if strings.TrimSpace(body) == "" {
		body = "Registration complete. Please log in."
	}
	return r.Dispatch(ActionDone{}, Registered{}, SetMessage{Message: body})
}

func fieldValue(req models.RegisterRequest, field string) string {
	if field == FieldEmail {
		return req.Email
	}
	return req.Username
}
