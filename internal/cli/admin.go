package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics (admin)",
	RunE:  runStats,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the backend with demo data",
	Long: `Create the initial admin account and sample grades, classes and
subjects. Seeding is idempotent: if the backend already holds data,
nothing is created and no credentials are printed.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	stats, err := a.client.Admin.Statistics(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(stats)
	}

	w := newTable()
	fmt.Fprintf(w, "Users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(w, "  students\t%d\n", stats.Students)
	fmt.Fprintf(w, "  teachers\t%d\n", stats.Teachers)
	fmt.Fprintf(w, "Pending requests\t%d\n", stats.PendingRequests)
	fmt.Fprintf(w, "AI sources\t%d\n", stats.TotalSources)
	fmt.Fprintf(w, "Chats\t%d\n", stats.TotalChats)
	return w.Flush()
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Seeding needs no session; it is how the first admin account comes to be.
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return err
	}

	res, err := a.client.Seed.Seed(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(res)
	}

	if res.AlreadySeeded {
		fmt.Printf("%s Backend already seeded, nothing created\n", colorYellow("•"))
		return nil
	}

	fmt.Printf("%s %s\n", colorGreen("✓"), res.Message)
	if res.AdminEmail != "" {
		fmt.Printf("  admin email:    %s\n", res.AdminEmail)
		fmt.Printf("  admin password: %s\n", res.AdminPassword)
	}
	return nil
}
