package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
	"github.com/pocketbuddy/pocketbuddy-go/listctl"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage AI source files (teacher, admin)",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible sources",
	RunE:  runSourcesList,
}

var sourcesUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a source file as AI grounding material",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesUpload,
}

var sourcesUpdateCmd = &cobra.Command{
	Use:   "update <source-id>",
	Short: "Update a source's metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesUpdate,
}

var sourcesDeleteCmd = &cobra.Command{
	Use:   "delete <source-id>",
	Short: "Delete a source and its stored file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesDelete,
}

func init() {
	sourcesUploadCmd.Flags().String("description", "", "what the material covers")
	sourcesUploadCmd.Flags().String("subject", "", "subject id the material belongs to")
	sourcesUploadCmd.Flags().String("grade", "", "grade id the material targets")

	sourcesUpdateCmd.Flags().String("description", "", "new description")
	sourcesUpdateCmd.Flags().String("subject", "", "new subject id")
	sourcesUpdateCmd.Flags().String("grade", "", "new grade id")
	sourcesUpdateCmd.Flags().Bool("active", true, "whether the source feeds AI answers")

	sourcesDeleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	sourcesCmd.AddCommand(sourcesListCmd, sourcesUploadCmd, sourcesUpdateCmd, sourcesDeleteCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func staffApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return nil, err
	}
	if err := a.requireAuth(staffOnly...); err != nil {
		return nil, err
	}
	return a, nil
}

func sourcesController(a *app) *listctl.Controller[pocketbuddy.AISource] {
	return listctl.New(listctl.Config[pocketbuddy.AISource]{
		Fetch: a.client.Sources.List,
		ID:    func(s pocketbuddy.AISource) uuid.UUID { return s.ID },
	})
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	a, err := staffApp(cmd)
	if err != nil {
		return err
	}

	sources, err := a.client.Sources.List(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"sources": sources, "count": len(sources)})
	}

	if len(sources) == 0 {
		fmt.Println("No sources uploaded")
		return nil
	}

	w := newTable()
	printTableHeader(w, "FILE", "SUBJECT", "GRADE", "UPLOADED BY", "ACTIVE", "ID")
	for _, s := range sources {
		subject := s.SubjectName
		if subject == "" {
			subject = "-"
		}
		grade := s.GradeName
		if grade == "" {
			grade = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(s.FileName, 32),
			subject,
			grade,
			s.UploadedByName,
			yesNo(s.IsActive),
			truncate(s.ID.String(), 12),
		)
	}
	return w.Flush()
}

func runSourcesUpload(cmd *cobra.Command, args []string) error {
	a, err := staffApp(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	description, _ := cmd.Flags().GetString("description")
	req := pocketbuddy.UploadSourceRequest{
		FileName:    filepath.Base(args[0]),
		File:        f,
		Description: description,
	}
	if v, _ := cmd.Flags().GetString("subject"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid subject id: %w", err)
		}
		req.SubjectID = &id
	}
	if v, _ := cmd.Flags().GetString("grade"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid grade id: %w", err)
		}
		req.GradeID = &id
	}

	resp, err := a.client.Sources.Upload(cmdContext(cmd), req)
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(resp)
	}
	fmt.Printf("%s Uploaded %s (id %s)\n", colorGreen("✓"), resp.FileName, resp.ID)
	return nil
}

func runSourcesUpdate(cmd *cobra.Command, args []string) error {
	a, err := staffApp(cmd)
	if err != nil {
		return err
	}

	sourceID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid source id: %w", err)
	}

	// Unset flags stay nil so the backend leaves those fields untouched.
	var req pocketbuddy.UpdateSourceRequest
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		req.Description = &v
	}
	if cmd.Flags().Changed("subject") {
		v, _ := cmd.Flags().GetString("subject")
		if v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return fmt.Errorf("invalid subject id: %w", err)
			}
			req.SubjectID = &id
		}
	}
	if cmd.Flags().Changed("grade") {
		v, _ := cmd.Flags().GetString("grade")
		if v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return fmt.Errorf("invalid grade id: %w", err)
			}
			req.GradeID = &id
		}
	}
	if cmd.Flags().Changed("active") {
		v, _ := cmd.Flags().GetBool("active")
		req.IsActive = &v
	}

	if err := a.client.Sources.Update(cmdContext(cmd), sourceID, req); err != nil {
		return printError(err)
	}
	fmt.Printf("%s Source updated: %s\n", colorGreen("✓"), sourceID)
	return nil
}

func runSourcesDelete(cmd *cobra.Command, args []string) error {
	a, err := staffApp(cmd)
	if err != nil {
		return err
	}

	sourceID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid source id: %w", err)
	}

	if !confirm(fmt.Sprintf("Delete source %s and its stored file?", sourceID)) {
		fmt.Println("Aborted")
		return nil
	}

	ctx := cmdContext(cmd)
	ctrl := sourcesController(a)
	if err := ctrl.Load(ctx); err != nil {
		return printError(err)
	}

	err = ctrl.Remove(ctx, sourceID, func(ctx context.Context) error {
		return a.client.Sources.Delete(ctx, sourceID)
	})
	if err != nil {
		return printError(err)
	}
	fmt.Printf("%s Source deleted: %s (%d remaining)\n", colorGreen("✓"), sourceID, len(ctrl.Items()))
	return nil
}
