package main

import (
	"testing"

	"github.com/everyedu/portal/apps/portal"
	apisvc "github.com/everyedu/portal/services/api"
	"github.com/everyedu/portal/tests"
)

func setup(t *testing.T) (*commandLine, *testutil.Backend) {
	backend := testutil.NewBackend()
	t.Cleanup(backend.Close)

	client, sessions := testutil.NewClient(backend)
	conf := testutil.NewConfig(backend.URL())
	router := portal.NewRouter(conf, sessions, client, testutil.NewLogger())

	cli := &commandLine{
		conf:     conf,
		sessions: sessions,
		router:   router,
		log:      testutil.NewLogger(),
	}
	return cli, backend
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_run(t *testing.T) {
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("secret1"), nil }

	tests := []cliTest{
		{name: "no subcommand", args: []string{}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"lol"}, wantErr: errHelp},
		{name: "login: no username", args: []string{"login"}, wantErr: errHelp},
		{name: "login", args: []string{"login", "-username", "alice"}},
		{name: "register: no email", args: []string{"register", "-username", "dave"}, wantErr: errHelp},
		{name: "register", args: []string{"register", "-username", "dave", "-email", "dave@test.test"}},
		{name: "whoami", args: []string{"whoami"}},
		{name: "logout", args: []string{"logout"}},
		{name: "dismiss: no id", args: []string{"dismiss"}, wantErr: errHelp},
		{name: "notify: no student", args: []string{"notify"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		cli, backend := setup(t)
		backend.Login = apisvc.LoginResponse{AccessToken: "tok", UserID: 7, Username: "alice", Role: "student"}
		args := append([]string{"portal"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() expected an error, got none")
			}
		})
	}
}

func Test_commandLine_authedCommands(t *testing.T) {
	cli, backend := setup(t)
	backend.Login = apisvc.LoginResponse{AccessToken: "tok", UserID: 7, Username: "alice", Role: "student"}
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("secret1"), nil }

	if err := cli.run([]string{"portal", "login", "-username", "alice"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if cli.sessions.Get().IsAnonymous() {
		t.Fatal("login left the session anonymous")
	}

	// a student can check in
	err := cli.run([]string{"portal", "checkin", "-sleep", "7", "-stress", "4", "-mood", "calm"})
	if err != nil {
		t.Errorf("checkin failed: %v", err)
	}
	if got := backend.Calls("POST /api/wellbeing/record"); got != 1 {
		t.Errorf("checkin calls = %d, want 1", got)
	}

	// but has no attendance follow-up list
	if err := cli.run([]string{"portal", "notify", "-student", "1"}); err == nil {
		t.Error("notify as student should fail")
	}

	// commands without a session fail with errNoLogin
	cli.run([]string{"portal", "logout"})
	if err := cli.run([]string{"portal", "dashboard"}); err != errNoLogin {
		t.Errorf("dashboard error = %v, want %v", err, errNoLogin)
	}
}
