package portal

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
)

var (
	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to user attributes"

	// formMessages overrides the generic translator texts with the wording
	// the forms display, keyed by "field|tag".
	formMessages = map[string]string{
		"username|required":         "Username is required",
		"username|notblank":         "Username is required",
		"username|min":              "Username must be at least 3 characters",
		"email|required":            "Email is required",
		"email|email":               "Please enter a valid email address",
		"password|required":         "Password is required",
		"password|min":              "Password must be at least 6 characters",
		"confirm_password|required": "Passwords do not match",
		"confirm_password|eqfield":  "Passwords do not match",
	}
)

func init() {
	core.Validate.RegisterStructValidation(registerStructValidation, RegisterForm{})
	core.RegisterCustomTranslation(pwdAttrSimTag, pwdAttrSimText)
}

// LoginForm is the credential input on the sign-in page.
type LoginForm struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

func (f LoginForm) Validate() error {
	if err := core.Validate.Struct(f); err != nil {
		return core.NewValidationError(errors.New("invalid input"), translateForm(err)...)
	}
	return nil
}

// RegisterForm is the account creation input. Role defaults to student when
// left empty.
type RegisterForm struct {
	Username        string `json:"username" validate:"required,notblank,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=student course_lead wellbeing_officer"`
}

func (f RegisterForm) Validate() error {
	if err := core.Validate.Struct(f); err != nil {
		return core.NewValidationError(errors.New("invalid input"), translateForm(err)...)
	}
	return nil
}

// registerStructValidation rejects passwords too similar to the username or
// the email.
func registerStructValidation(sl validator.StructLevel) {
	form, ok := sl.Current().Interface().(RegisterForm)
	if !ok || form.Password == "" {
		return
	}
	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	if getRatio(form.Password, form.Username) >= pwdMaxSim ||
		getRatio(form.Password, form.Email) >= pwdMaxSim {
		sl.ReportError(form.Password, "password", "Password", pwdAttrSimTag, "")
	}
}

func translateForm(err error) []core.FieldError {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	flds := make([]core.FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		msg, ok := formMessages[vErr.Field()+"|"+vErr.Tag()]
		if !ok {
			msg = vErr.Translate(core.Translator)
		}
		flds = append(flds, core.FieldError{Field: vErr.Field(), Error: msg})
	}
	return flds
}

// Login validates the form locally, exchanges the credentials for a token
// and transitions the router to the role dashboard. On failure the state is
// unchanged and nothing is persisted.
func (r *Router) Login(ctx context.Context, form LoginForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	resp, err := r.client.Auth.Login(ctx, form.Username, form.Password)
	if err != nil {
		return err
	}
	r.authenticate(ctx, session.Session{
		Token:    resp.AccessToken,
		UserID:   strconv.Itoa(resp.UserID),
		Role:     resp.Role,
		Username: resp.Username,
	})
	return nil
}

// Register creates an account and returns the username, which the sign-in
// page uses to pre-fill its form. Registration never signs the user in.
func (r *Router) Register(ctx context.Context, form RegisterForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}
	if form.Role == "" {
		form.Role = session.RoleStudent
	}
	_, err := r.client.Auth.Register(ctx, apisvc.NewAccount{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		return "", err
	}
	return form.Username, nil
}
