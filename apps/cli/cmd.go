package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/everyedu/portal/apps/portal"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp    = errors.New("help provided")
	errNoLogin = errors.New("not signed in; run 'login' first")
)

type commandLine struct {
	conf     *core.Config
	sessions *session.Store
	router   *portal.Router
	log      core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -username USERNAME                 - sign in; the password is prompted next")
	fmt.Println("  register -username USERNAME -email EMAIL [-role ROLE] - create an account")
	fmt.Println("  logout                                   - sign out and forget the stored session")
	fmt.Println("  whoami                                   - show the stored session")
	fmt.Println("  dashboard [-tab TAB]                     - render a dashboard tab for the signed-in role")
	fmt.Println("  checkin -sleep N -stress N -mood MOOD [-comments TEXT] [-requests TEXT] - submit the daily check-in")
	fmt.Println("  dismiss -id ALERT                        - mark an alert as read")
	fmt.Println("  notify -student ID                       - alert a low-attendance student's record")
	fmt.Println("  sendhelp [-student ID]                   - offer help to stressed students (all when no -student)")
	fmt.Println("Roles:")
	for _, role := range session.PublicRoles {
		fmt.Printf("  %-18s - %s\n", role.Value, role.Description)
	}
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The account's username. The password will be prompted next.")

	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	registerUname := registerCmd.String("username", "", "The new account's username.")
	registerEmail := registerCmd.String("email", "", "The new account's email.")
	registerRole := registerCmd.String("role", session.RoleStudent, "One of: student, course_lead, wellbeing_officer.")

	dashboardCmd := flag.NewFlagSet("dashboard", flag.ExitOnError)
	dashboardTab := dashboardCmd.String("tab", "", "The tab to render; the role's default tab when omitted.")

	checkinCmd := flag.NewFlagSet("checkin", flag.ExitOnError)
	checkinSleep := checkinCmd.Int("sleep", 0, "Sleep quality, 1 to 10.")
	checkinStress := checkinCmd.Int("stress", 0, "Stress level, 1 to 10.")
	checkinMood := checkinCmd.String("mood", "", "Current mood.")
	checkinComments := checkinCmd.String("comments", "", "Optional comments.")
	checkinRequests := checkinCmd.String("requests", "", "Optional support requests.")

	dismissCmd := flag.NewFlagSet("dismiss", flag.ExitOnError)
	dismissID := dismissCmd.Int("id", 0, "The alert id to mark as read.")

	notifyCmd := flag.NewFlagSet("notify", flag.ExitOnError)
	notifyStudent := notifyCmd.Int("student", 0, "The student id to notify.")

	sendHelpCmd := flag.NewFlagSet("sendhelp", flag.ExitOnError)
	sendHelpStudent := sendHelpCmd.Int("student", 0, "A single student id; all flagged students when omitted.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		return cli.login(ctx, *loginUname, pwd)
	case "register":
		if err := registerCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *registerUname == "" || *registerEmail == "" {
			registerCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		confirm, err := cli.promptPassword("Confirm password:")
		if err != nil {
			return err
		}
		return cli.register(ctx, *registerUname, *registerEmail, *registerRole, pwd, confirm)
	case "logout":
		cli.router.Logout()
		fmt.Println("Signed out.")
		return nil
	case "whoami":
		return cli.whoami()
	case "dashboard":
		if err := dashboardCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.dashboard(ctx, *dashboardTab)
	case "checkin":
		if err := checkinCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.checkin(ctx, *checkinSleep, *checkinStress, *checkinMood, *checkinComments, *checkinRequests)
	case "dismiss":
		if err := dismissCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *dismissID == 0 {
			dismissCmd.Usage()
			return errHelp
		}
		return cli.dismiss(ctx, *dismissID)
	case "notify":
		if err := notifyCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *notifyStudent == 0 {
			notifyCmd.Usage()
			return errHelp
		}
		return cli.notify(ctx, *notifyStudent)
	case "sendhelp":
		if err := sendHelpCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.sendHelp(ctx, *sendHelpStudent)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// mounted restores the stored session and returns the role dashboard, or
// errNoLogin when no valid session survives.
func (cli *commandLine) mounted(ctx context.Context) (portal.Shell, error) {
	cli.router.Start(ctx)
	shell := cli.router.Shell()
	if shell == nil {
		return nil, errNoLogin
	}
	return shell, nil
}

func (cli *commandLine) login(ctx context.Context, uname, pwd string) error {
	err := cli.router.Login(ctx, portal.LoginForm{Username: uname, Password: pwd})
	if err != nil {
		return userError(err, "Login failed. Please try again.")
	}
	shell := cli.router.Shell()
	fmt.Printf("Signed in as %s.\n", shell.Username())
	return nil
}

func (cli *commandLine) register(ctx context.Context, uname, email, role, pwd, confirm string) error {
	username, err := cli.router.Register(ctx, portal.RegisterForm{
		Username:        uname,
		Email:           email,
		Password:        pwd,
		ConfirmPassword: confirm,
		Role:            role,
	})
	if err != nil {
		return userError(err, "Registration failed. Please try again.")
	}
	fmt.Printf("Account created. Sign in with: login -username %s\n", username)
	return nil
}

func (cli *commandLine) whoami() error {
	sess := cli.sessions.Restore()
	if sess.IsAnonymous() {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s (%s)\n", sess.Username, sess.Role)
	return nil
}

func (cli *commandLine) checkin(ctx context.Context, sleep, stress int, mood, comments, requests string) error {
	shell, err := cli.mounted(ctx)
	if err != nil {
		return err
	}
	student, ok := shell.(*portal.StudentShell)
	if !ok {
		return errors.New("only students submit check-ins")
	}
	err = student.Survey.Submit(ctx, panelsSurveyForm(sleep, stress, mood, comments, requests))
	if err != nil {
		return userError(err, "Could not submit your check-in. Please try again.")
	}
	fmt.Println("Thank you! Your check-in was recorded.")
	return nil
}

func (cli *commandLine) dismiss(ctx context.Context, alertID int) error {
	shell, err := cli.mounted(ctx)
	if err != nil {
		return err
	}
	alerts := alertsPanel(shell)
	if alerts == nil {
		return errors.New("this role has no alert feed")
	}
	alerts.Refresh(ctx)
	if err := alerts.Dismiss(ctx, alertID); err != nil {
		return userError(err, "Could not dismiss the alert. Please try again.")
	}
	fmt.Printf("Alert %d dismissed.\n", alertID)
	return nil
}

func (cli *commandLine) notify(ctx context.Context, studentID int) error {
	shell, err := cli.mounted(ctx)
	if err != nil {
		return err
	}
	absentees := absenteesPanel(shell)
	if absentees == nil {
		return errors.New("this role has no attendance follow-up list")
	}
	if err := absentees.Notify(ctx, studentID); err != nil {
		return userError(err, "Could not record the notification. Please try again.")
	}
	fmt.Printf("Student %d notified about low attendance.\n", studentID)
	return nil
}

func (cli *commandLine) sendHelp(ctx context.Context, studentID int) error {
	shell, err := cli.mounted(ctx)
	if err != nil {
		return err
	}
	officer, ok := shell.(*portal.WellbeingOfficerShell)
	if !ok {
		return errors.New("only wellbeing officers send help offers")
	}
	officer.SendHelp.Refresh(ctx)
	if studentID == 0 {
		sent := officer.SendHelp.BroadcastHelp(ctx)
		fmt.Printf("Help offered to %d students.\n", sent)
		return nil
	}
	for _, student := range officer.SendHelp.Students() {
		if student.ID == studentID {
			if err := officer.SendHelp.SendHelp(ctx, student); err != nil {
				return userError(err, "Could not send the help offer. Please try again.")
			}
			fmt.Printf("Help offered to %s %s.\n", student.FirstName, student.LastName)
			return nil
		}
	}
	return fmt.Errorf("student %d is not on the support list", studentID)
}

// userError surfaces form field errors and backend messages; anything else
// collapses to the fallback text the page would display.
func userError(err error, fallback string) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		for _, fld := range vErr.Fields {
			fmt.Printf("  %s: %s\n", fld.Field, fld.Error)
		}
		return errors.New("invalid input")
	}
	var apiErr *core.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return errors.New(fallback)
}
