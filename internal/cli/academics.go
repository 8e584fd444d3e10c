package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
	"github.com/pocketbuddy/pocketbuddy-go/listctl"
)

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "Manage grades (admin)",
}

var gradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List grades in promotion order",
	RunE:  runGradesList,
}

var gradesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a grade",
	Args:  cobra.ExactArgs(1),
	RunE:  runGradesCreate,
}

var gradesDeleteCmd = &cobra.Command{
	Use:   "delete <grade-id>",
	Short: "Delete a grade",
	Args:  cobra.ExactArgs(1),
	RunE:  runGradesDelete,
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Manage classes (admin)",
}

var classesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classes",
	RunE:  runClassesList,
}

var classesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a class within a grade",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassesCreate,
}

var classesDeleteCmd = &cobra.Command{
	Use:   "delete <class-id>",
	Short: "Delete a class",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassesDelete,
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Manage subjects (admin)",
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects",
	RunE:  runSubjectsList,
}

var subjectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsCreate,
}

var subjectsDeleteCmd = &cobra.Command{
	Use:   "delete <subject-id>",
	Short: "Delete a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsDelete,
}

func init() {
	gradesCreateCmd.Flags().Int("order", 0, "position in the promotion sequence (1-based)")
	gradesDeleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	classesCreateCmd.Flags().String("grade", "", "grade id the class belongs to")
	_ = classesCreateCmd.MarkFlagRequired("grade")
	classesDeleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	subjectsCreateCmd.Flags().String("description", "", "subject description")
	subjectsDeleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	gradesCmd.AddCommand(gradesListCmd, gradesCreateCmd, gradesDeleteCmd)
	classesCmd.AddCommand(classesListCmd, classesCreateCmd, classesDeleteCmd)
	subjectsCmd.AddCommand(subjectsListCmd, subjectsCreateCmd, subjectsDeleteCmd)

	rootCmd.AddCommand(gradesCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(subjectsCmd)
}

// gradesController keeps the grade list sorted by order across mutations.
func gradesController(a *app) *listctl.Controller[pocketbuddy.Grade] {
	return listctl.New(listctl.Config[pocketbuddy.Grade]{
		Fetch: a.client.Grades.List,
		ID:    func(g pocketbuddy.Grade) uuid.UUID { return g.ID },
		Less:  func(a, b pocketbuddy.Grade) bool { return a.Order < b.Order },
	})
}

func runGradesList(cmd *cobra.Command, args []string) error {
	// Listing grades needs no session: registration asks for a grade before
	// the visitor can log in.
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return err
	}

	ctrl := gradesController(a)
	if err := ctrl.Load(cmdContext(cmd)); err != nil {
		return printError(err)
	}
	grades := ctrl.Items()

	if jsonOut {
		return printJSON(map[string]interface{}{"grades": grades, "count": len(grades)})
	}

	if len(grades) == 0 {
		fmt.Println("No grades defined")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ORDER", "NAME", "ID")
	for _, g := range grades {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.Order, g.Name, g.ID)
	}
	return w.Flush()
}

func runGradesCreate(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	order, _ := cmd.Flags().GetInt("order")
	ctx := cmdContext(cmd)

	ctrl := gradesController(a)
	if err := ctrl.Load(ctx); err != nil {
		return printError(err)
	}

	grade, err := ctrl.Create(ctx, func(ctx context.Context) (pocketbuddy.Grade, error) {
		g, err := a.client.Grades.Create(ctx, pocketbuddy.CreateGradeRequest{
			Name:  args[0],
			Order: order,
		})
		if err != nil {
			return pocketbuddy.Grade{}, err
		}
		return *g, nil
	})
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(grade)
	}
	fmt.Printf("%s Grade created: %s (order %d, id %s)\n", colorGreen("✓"), grade.Name, grade.Order, grade.ID)
	return nil
}

func runGradesDelete(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	gradeID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid grade id: %w", err)
	}

	if !confirm(fmt.Sprintf("Delete grade %s?", gradeID)) {
		fmt.Println("Aborted")
		return nil
	}

	ctx := cmdContext(cmd)
	ctrl := gradesController(a)
	if err := ctrl.Load(ctx); err != nil {
		return printError(err)
	}

	err = ctrl.Remove(ctx, gradeID, func(ctx context.Context) error {
		return a.client.Grades.Delete(ctx, gradeID)
	})
	if err != nil {
		return printError(err)
	}
	fmt.Printf("%s Grade deleted: %s\n", colorGreen("✓"), gradeID)
	return nil
}

func runClassesList(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	classes, err := a.client.Classes.List(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"classes": classes, "count": len(classes)})
	}

	if len(classes) == 0 {
		fmt.Println("No classes defined")
		return nil
	}

	w := newTable()
	printTableHeader(w, "NAME", "GRADE", "ID")
	for _, c := range classes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, truncate(c.GradeID.String(), 12), c.ID)
	}
	return w.Flush()
}

func runClassesCreate(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	gradeStr, _ := cmd.Flags().GetString("grade")
	gradeID, err := uuid.Parse(gradeStr)
	if err != nil {
		return fmt.Errorf("invalid grade id: %w", err)
	}

	class, err := a.client.Classes.Create(cmdContext(cmd), pocketbuddy.CreateClassRequest{
		Name:    args[0],
		GradeID: gradeID,
	})
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(class)
	}
	fmt.Printf("%s Class created: %s (id %s)\n", colorGreen("✓"), class.Name, class.ID)
	return nil
}

func runClassesDelete(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid class id: %w", err)
	}

	if !confirm(fmt.Sprintf("Delete class %s?", classID)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.Classes.Delete(cmdContext(cmd), classID); err != nil {
		return printError(err)
	}
	fmt.Printf("%s Class deleted: %s\n", colorGreen("✓"), classID)
	return nil
}

func runSubjectsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	subjects, err := a.client.Subjects.List(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"subjects": subjects, "count": len(subjects)})
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects defined")
		return nil
	}

	w := newTable()
	printTableHeader(w, "NAME", "DESCRIPTION", "ID")
	for _, s := range subjects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, truncate(s.Description, 40), s.ID)
	}
	return w.Flush()
}

func runSubjectsCreate(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	description, _ := cmd.Flags().GetString("description")
	subject, err := a.client.Subjects.Create(cmdContext(cmd), pocketbuddy.CreateSubjectRequest{
		Name:        args[0],
		Description: description,
	})
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(subject)
	}
	fmt.Printf("%s Subject created: %s (id %s)\n", colorGreen("✓"), subject.Name, subject.ID)
	return nil
}

func runSubjectsDelete(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	subjectID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid subject id: %w", err)
	}

	if !confirm(fmt.Sprintf("Delete subject %s?", subjectID)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.Subjects.Delete(cmdContext(cmd), subjectID); err != nil {
		return printError(err)
	}
	fmt.Printf("%s Subject deleted: %s\n", colorGreen("✓"), subjectID)
	return nil
}
