package portal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everyedu/portal/apps/portal"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/tests"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want *core.ValidationError, got %T (%v)", err, err)
	}
	out := make(map[string]string, len(vErr.Fields))
	for _, fld := range vErr.Fields {
		out[fld.Field] = fld.Error
	}
	return out
}

func TestLoginForm_validate(t *testing.T) {
	assert.NoError(t, portal.LoginForm{Username: "alice", Password: "secret1"}.Validate())

	flds := fieldErrors(t, portal.LoginForm{}.Validate())
	assert.Equal(t, "Username is required", flds["username"])
	assert.Equal(t, "Password is required", flds["password"])

	flds = fieldErrors(t, portal.LoginForm{Username: "   ", Password: "secret1"}.Validate())
	assert.Equal(t, "Username is required", flds["username"])
}

func TestRegisterForm_validate(t *testing.T) {
	valid := portal.RegisterForm{
		Username:        "alice",
		Email:           "alice@test.test",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            "student",
	}
	assert.NoError(t, valid.Validate())

	// role may be left empty (defaulted on submit)
	noRole := valid
	noRole.Role = ""
	assert.NoError(t, noRole.Validate())

	tests := []struct {
		name    string
		mutate  func(f *portal.RegisterForm)
		field   string
		wantMsg string
	}{
		{
			name:    "username required",
			mutate:  func(f *portal.RegisterForm) { f.Username = "" },
			field:   "username",
			wantMsg: "Username is required",
		},
		{
			name:    "username too short",
			mutate:  func(f *portal.RegisterForm) { f.Username = "al" },
			field:   "username",
			wantMsg: "Username must be at least 3 characters",
		},
		{
			name:    "email required",
			mutate:  func(f *portal.RegisterForm) { f.Email = "" },
			field:   "email",
			wantMsg: "Email is required",
		},
		{
			name:    "email invalid",
			mutate:  func(f *portal.RegisterForm) { f.Email = "not-an-email" },
			field:   "email",
			wantMsg: "Please enter a valid email address",
		},
		{
			name:    "password too short",
			mutate:  func(f *portal.RegisterForm) { f.Password, f.ConfirmPassword = "abc12", "abc12" },
			field:   "password",
			wantMsg: "Password must be at least 6 characters",
		},
		{
			name:    "passwords do not match",
			mutate:  func(f *portal.RegisterForm) { f.ConfirmPassword = "secret2" },
			field:   "confirm_password",
			wantMsg: "Passwords do not match",
		},
		{
			name:    "password similar to username",
			mutate:  func(f *portal.RegisterForm) { f.Username = "secret1x"; f.Password, f.ConfirmPassword = "secret1", "secret1" },
			field:   "password",
			wantMsg: "password cannot be similar to user attributes",
		},
		{
			name:   "unknown role",
			mutate: func(f *portal.RegisterForm) { f.Role = "principal" },
			field:  "role",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			flds := fieldErrors(t, form.Validate())
			msg, ok := flds[tt.field]
			assert.True(t, ok, "no error on field %q: %v", tt.field, flds)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, msg)
			}
		})
	}
}

func TestRouter_register(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()

	router, sessions := newRouter(backend)
	router.Start(ctx)

	username, err := router.Register(ctx, portal.RegisterForm{
		Username:        "dave",
		Email:           "dave@test.test",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	assert.NoError(t, err)
	// the username comes back for pre-filling the sign-in form; no session
	// is created
	assert.Equal(t, "dave", username)
	assert.Equal(t, portal.StateAnonymous, router.State())
	assert.True(t, sessions.Get().IsAnonymous())
	assert.Equal(t, 1, backend.Calls("POST /api/auth/register"))

	// a locally invalid form never reaches the backend
	_, err = router.Register(ctx, portal.RegisterForm{Username: "eve"})
	assert.Error(t, err)
	assert.Equal(t, 1, backend.Calls("POST /api/auth/register"))
}
