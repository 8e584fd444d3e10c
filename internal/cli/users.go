package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
	"github.com/pocketbuddy/pocketbuddy-go/listctl"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE:  runUsersList,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an account and its chats",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var usersActivateCmd = &cobra.Command{
	Use:   "activate <user-id>",
	Short: "Re-enable a deactivated account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersActivate,
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate <user-id>",
	Short: "Block an account from logging in",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDeactivate,
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote <user-id>",
	Short: "Move a student to the next grade",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersPromote,
}

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "Manage pending registrations (admin)",
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending registration requests",
	RunE:  runApprovalsList,
}

var approvalsApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a registration, activating the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprovalsApprove,
}

var approvalsRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a registration and remove the provisional account",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprovalsReject,
}

func init() {
	usersUpdateCmd.Flags().String("first-name", "", "new first name")
	usersUpdateCmd.Flags().String("last-name", "", "new last name")
	usersUpdateCmd.Flags().String("grade", "", "new grade id")
	usersUpdateCmd.Flags().String("class", "", "new class id")

	usersDeleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	approvalsRejectCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersActivateCmd)
	usersCmd.AddCommand(usersDeactivateCmd)
	usersCmd.AddCommand(usersPromoteCmd)

	approvalsCmd.AddCommand(approvalsListCmd)
	approvalsCmd.AddCommand(approvalsApproveCmd)
	approvalsCmd.AddCommand(approvalsRejectCmd)

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(approvalsCmd)
}

func adminApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return nil, err
	}
	if err := a.requireAuth(adminOnly...); err != nil {
		return nil, err
	}
	return a, nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	users, err := a.client.Admin.Users(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"users": users, "count": len(users)})
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "EMAIL", "ROLE", "APPROVED", "ACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(u.ID.String(), 12),
			u.FullName(),
			u.Email,
			u.Role,
			yesNo(u.IsApproved),
			yesNo(u.IsActive),
		)
	}
	return w.Flush()
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	var req pocketbuddy.UpdateUserRequest
	if v, _ := cmd.Flags().GetString("first-name"); v != "" {
		req.FirstName = &v
	}
	if v, _ := cmd.Flags().GetString("last-name"); v != "" {
		req.LastName = &v
	}
	if v, _ := cmd.Flags().GetString("grade"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid grade id: %w", err)
		}
		req.GradeID = &id
	}
	if v, _ := cmd.Flags().GetString("class"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid class id: %w", err)
		}
		req.ClassID = &id
	}

	if err := a.client.Admin.UpdateUser(cmdContext(cmd), userID, req); err != nil {
		return printError(err)
	}
	fmt.Printf("%s User updated: %s\n", colorGreen("✓"), userID)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	if !confirm(fmt.Sprintf("Delete user %s and all their chats?", userID)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.Admin.DeleteUser(cmdContext(cmd), userID); err != nil {
		return printError(err)
	}
	fmt.Printf("%s User deleted: %s\n", colorGreen("✓"), userID)
	return nil
}

func runUsersActivate(cmd *cobra.Command, args []string) error {
	return runUserAction(cmd, args[0], "activated", func(a *app, ctx context.Context, id uuid.UUID) error {
		return a.client.Admin.ActivateUser(ctx, id)
	})
}

func runUsersDeactivate(cmd *cobra.Command, args []string) error {
	return runUserAction(cmd, args[0], "deactivated", func(a *app, ctx context.Context, id uuid.UUID) error {
		return a.client.Admin.DeactivateUser(ctx, id)
	})
}

func runUsersPromote(cmd *cobra.Command, args []string) error {
	return runUserAction(cmd, args[0], "promoted to the next grade", func(a *app, ctx context.Context, id uuid.UUID) error {
		return a.client.Admin.PromoteGrade(ctx, id)
	})
}

func runUserAction(cmd *cobra.Command, rawID, verb string, action func(*app, context.Context, uuid.UUID) error) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	if err := action(a, cmdContext(cmd), userID); err != nil {
		return printError(err)
	}
	fmt.Printf("%s User %s: %s\n", colorGreen("✓"), verb, userID)
	return nil
}

// approvalsController keeps the pending-request list in sync while approving
// or rejecting: an entry leaves the list only once the backend confirms.
func approvalsController(a *app) *listctl.Controller[pocketbuddy.RegistrationRequest] {
	return listctl.New(listctl.Config[pocketbuddy.RegistrationRequest]{
		Fetch: a.client.Admin.RegistrationRequests,
		ID:    func(r pocketbuddy.RegistrationRequest) uuid.UUID { return r.ID },
	})
}

func runApprovalsList(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	ctrl := approvalsController(a)
	if err := ctrl.Load(cmdContext(cmd)); err != nil {
		return printError(err)
	}
	reqs := ctrl.Items()

	if jsonOut {
		return printJSON(map[string]interface{}{"requests": reqs, "count": len(reqs)})
	}

	if len(reqs) == 0 {
		fmt.Println("No pending registrations")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "EMAIL", "ROLE", "SUBMITTED")
	for _, r := range reqs {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			truncate(r.ID.String(), 12),
			r.FirstName, r.LastName,
			r.Email,
			r.RoleRequested,
			formatTime(r.CreatedAt),
		)
	}
	return w.Flush()
}

func runApprovalsApprove(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid request id: %w", err)
	}

	ctx := cmdContext(cmd)
	ctrl := approvalsController(a)
	if err := ctrl.Load(ctx); err != nil {
		return printError(err)
	}

	err = ctrl.Remove(ctx, requestID, func(ctx context.Context) error {
		return a.client.Admin.ApproveRegistration(ctx, requestID)
	})
	if err != nil {
		return printError(err)
	}

	fmt.Printf("%s Registration approved: %s (%d still pending)\n",
		colorGreen("✓"), requestID, len(ctrl.Items()))
	return nil
}

func runApprovalsReject(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid request id: %w", err)
	}

	if !confirm(fmt.Sprintf("Reject registration %s? The provisional account is removed.", requestID)) {
		fmt.Println("Aborted")
		return nil
	}

	ctx := cmdContext(cmd)
	ctrl := approvalsController(a)
	if err := ctrl.Load(ctx); err != nil {
		return printError(err)
	}

	err = ctrl.Remove(ctx, requestID, func(ctx context.Context) error {
		return a.client.Admin.RejectRegistration(ctx, requestID)
	})
	if err != nil {
		return printError(err)
	}

	fmt.Printf("%s Registration rejected: %s (%d still pending)\n",
		colorRed("✗"), requestID, len(ctrl.Items()))
	return nil
}
