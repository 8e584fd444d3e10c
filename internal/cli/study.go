package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List study topics derived from the AI sources",
	RunE:  runTopics,
}

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards <topic>",
	Short: "Generate study flashcards for a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlashcards,
}

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Generate a quiz and answer it interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuiz,
}

func init() {
	flashcardsCmd.Flags().Int("count", 10, "number of cards to generate")
	flashcardsCmd.Flags().String("subject", "", "subject id to scope generation to")

	quizCmd.Flags().Int("questions", 5, "number of questions to generate")
	quizCmd.Flags().String("subject", "", "subject id to scope generation to")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(quizCmd)
}

func parseSubjectFlag(cmd *cobra.Command) (*uuid.UUID, error) {
	v, _ := cmd.Flags().GetString("subject")
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("invalid subject id: %w", err)
	}
	return &id, nil
}

func runTopics(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	topics, err := a.client.Study.Topics(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(topics)
	}

	if len(topics.Topics) == 0 {
		fmt.Println("No topics available; ask a teacher to upload source material")
		return nil
	}

	fmt.Println("Available topics:")
	for _, t := range topics.Topics {
		fmt.Printf("  - %s\n", t)
	}
	if len(topics.Subjects) > 0 {
		fmt.Println("\nSubjects:")
		for _, s := range topics.Subjects {
			fmt.Printf("  - %s (%s)\n", s.Name, s.ID)
		}
	}
	return nil
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	subjectID, err := parseSubjectFlag(cmd)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")

	ctx, cancel := timeoutFor(aiTimeout)
	defer cancel()

	cards, err := a.client.Study.GenerateFlashcards(ctx, pocketbuddy.GenerateFlashcardsRequest{
		Topic:     args[0],
		SubjectID: subjectID,
		Count:     count,
	})
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"flashcards": cards, "count": len(cards)})
	}

	for i, card := range cards {
		fmt.Printf("%s %s\n", colorYellow(fmt.Sprintf("%d.", i+1)), card.Question)
		fmt.Printf("   %s\n\n", card.Answer)
	}
	return nil
}

func runQuiz(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	subjectID, err := parseSubjectFlag(cmd)
	if err != nil {
		return err
	}
	questionCount, _ := cmd.Flags().GetInt("questions")

	ctx, cancel := timeoutFor(aiTimeout)
	defer cancel()

	questions, err := a.client.Study.GenerateQuiz(ctx, pocketbuddy.GenerateQuizRequest{
		Topic:         args[0],
		SubjectID:     subjectID,
		QuestionCount: questionCount,
	})
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"questions": questions, "count": len(questions)})
	}

	// One question at a time; the correct answer shows only after the user
	// commits to a letter.
	reader := bufio.NewReader(os.Stdin)
	score := 0
	for i, q := range questions {
		fmt.Printf("\n%s %s\n", colorYellow(fmt.Sprintf("%d/%d", i+1, len(questions))), q.Question)
		for _, opt := range q.Options {
			fmt.Printf("  %s\n", opt)
		}

		fmt.Print("Your answer: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		answer := strings.ToUpper(strings.TrimSpace(line))

		if answer == q.Correct {
			score++
			fmt.Printf("%s Correct\n", colorGreen("✓"))
		} else {
			fmt.Printf("%s Wrong, the answer is %s\n", colorRed("✗"), q.Correct)
		}
	}

	fmt.Printf("\nScore: %d/%d\n", score, len(questions))
	return nil
}
