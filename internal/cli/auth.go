package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Erase the stored session credential",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Submit a registration request",
	Long: `Submit an account registration. Accounts need admin approval before
the first login, so registering does not log you in.

Students must pick a grade:
  pbctl register --email jan@skola.sk --first-name Ján --last-name Novák \
    --role student --grade <grade-id>`,
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("role", "student", "requested role (student or teacher)")
	registerCmd.Flags().String("grade", "", "grade id (required for students)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func readPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if err := a.requireAnonymous(); err != nil {
		return err
	}

	pw, _ := cmd.Flags().GetString("password")
	password, err := readPassword(pw)
	if err != nil {
		return err
	}

	user, err := a.store.Login(ctx, args[0], password)
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(user)
	}
	fmt.Printf("%s Logged in as %s (%s)\n", colorGreen("✓"), user.FullName(), user.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return err
	}
	if err := a.store.Logout(); err != nil {
		return err
	}
	fmt.Printf("%s Logged out\n", colorGreen("✓"))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if err := a.requireAnonymous(); err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	roleStr, _ := cmd.Flags().GetString("role")
	gradeStr, _ := cmd.Flags().GetString("grade")

	role, err := pocketbuddy.ParseRole(strings.ToLower(roleStr))
	if err != nil {
		return err
	}

	var gradeID *uuid.UUID
	if gradeStr != "" {
		id, err := uuid.Parse(gradeStr)
		if err != nil {
			return fmt.Errorf("invalid grade id: %w", err)
		}
		gradeID = &id
	}

	pw, _ := cmd.Flags().GetString("password")
	password, err := readPassword(pw)
	if err != nil {
		return err
	}

	err = a.store.Register(ctx, pocketbuddy.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		GradeID:   gradeID,
	})
	if err != nil {
		return printError(err)
	}

	fmt.Printf("%s Registration submitted. An administrator has to approve it before you can log in.\n", colorGreen("✓"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	user := a.store.Identity()
	if jsonOut {
		return printJSON(user)
	}

	fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
	fmt.Printf("  role:   %s\n", user.Role)
	fmt.Printf("  active: %s\n", yesNo(user.IsActive))
	if user.GradeID != nil {
		fmt.Printf("  grade:  %s\n", user.GradeID)
	}
	if user.ClassID != nil {
		fmt.Printf("  class:  %s\n", user.ClassID)
	}
	return nil
}
