package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

var mySubjectsCmd = &cobra.Command{
	Use:   "my-subjects",
	Short: "Manage your subject assignments (teacher)",
}

var mySubjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your subject assignments",
	RunE:  runMySubjectsList,
}

var mySubjectsAssignCmd = &cobra.Command{
	Use:   "assign <subject-id>",
	Short: "Assign yourself a subject, optionally scoped to a grade",
	Args:  cobra.ExactArgs(1),
	RunE:  runMySubjectsAssign,
}

var mySubjectsRemoveCmd = &cobra.Command{
	Use:   "remove <assignment-id>",
	Short: "Remove one of your assignments",
	Args:  cobra.ExactArgs(1),
	RunE:  runMySubjectsRemove,
}

func init() {
	mySubjectsAssignCmd.Flags().String("grade", "", "grade id to scope the assignment to")
	mySubjectsRemoveCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	mySubjectsCmd.AddCommand(mySubjectsListCmd, mySubjectsAssignCmd, mySubjectsRemoveCmd)
	rootCmd.AddCommand(mySubjectsCmd)
}

func teacherApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return nil, err
	}
	if err := a.requireAuth(pocketbuddy.RoleTeacher); err != nil {
		return nil, err
	}
	return a, nil
}

func runMySubjectsList(cmd *cobra.Command, args []string) error {
	a, err := teacherApp(cmd)
	if err != nil {
		return err
	}

	assignments, err := a.client.Teacher.MySubjects(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"assignments": assignments, "count": len(assignments)})
	}

	if len(assignments) == 0 {
		fmt.Println("No subjects assigned")
		return nil
	}

	w := newTable()
	printTableHeader(w, "SUBJECT", "GRADE", "ASSIGNMENT ID")
	for _, ts := range assignments {
		subject := "-"
		if ts.Subject != nil {
			subject = ts.Subject.Name
		}
		grade := "all grades"
		if ts.Grade != nil {
			grade = ts.Grade.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", subject, grade, ts.ID)
	}
	return w.Flush()
}

func runMySubjectsAssign(cmd *cobra.Command, args []string) error {
	a, err := teacherApp(cmd)
	if err != nil {
		return err
	}

	subjectID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid subject id: %w", err)
	}

	req := pocketbuddy.AssignSubjectRequest{SubjectID: subjectID}
	if gradeStr, _ := cmd.Flags().GetString("grade"); gradeStr != "" {
		id, err := uuid.Parse(gradeStr)
		if err != nil {
			return fmt.Errorf("invalid grade id: %w", err)
		}
		req.GradeID = &id
	}

	assignmentID, err := a.client.Teacher.AssignSubject(cmdContext(cmd), req)
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"id": assignmentID})
	}
	fmt.Printf("%s Subject assigned (assignment id %s)\n", colorGreen("✓"), assignmentID)
	return nil
}

func runMySubjectsRemove(cmd *cobra.Command, args []string) error {
	a, err := teacherApp(cmd)
	if err != nil {
		return err
	}

	assignmentID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid assignment id: %w", err)
	}

	if !confirm(fmt.Sprintf("Remove assignment %s?", assignmentID)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.Teacher.RemoveSubject(cmdContext(cmd), assignmentID); err != nil {
		return printError(err)
	}
	fmt.Printf("%s Assignment removed: %s\n", colorGreen("✓"), assignmentID)
	return nil
}
