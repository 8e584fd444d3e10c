package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

// aiTimeout bounds AI round trips, which run far longer than CRUD calls.
const aiTimeout = 2 * time.Minute

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the AI assistant",
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your conversations",
	RunE:  runChatList,
}

var chatNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Start a new conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChatNew,
}

var chatSendCmd = &cobra.Command{
	Use:   "send <chat-id> <message>",
	Short: "Send a message and wait for the assistant's reply",
	Args:  cobra.ExactArgs(2),
	RunE:  runChatSend,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history <chat-id>",
	Short: "Show a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatHistory,
}

var chatDeleteCmd = &cobra.Command{
	Use:   "delete <chat-id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatDelete,
}

func init() {
	chatSendCmd.Flags().StringSlice("attach", nil, "file to attach (repeatable)")
	chatDeleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	chatCmd.AddCommand(chatListCmd, chatNewCmd, chatSendCmd, chatHistoryCmd, chatDeleteCmd)
	rootCmd.AddCommand(chatCmd)
}

func authedApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmdContext(cmd))
	if err != nil {
		return nil, err
	}
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a, nil
}

func runChatList(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	chats, err := a.client.Chats.List(cmdContext(cmd))
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"chats": chats, "count": len(chats)})
	}

	if len(chats) == 0 {
		fmt.Println("No conversations yet (start one with `pbctl chat new`)")
		return nil
	}

	w := newTable()
	printTableHeader(w, "TITLE", "UPDATED", "ID")
	for _, c := range chats {
		fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(c.Title, 40), formatTime(c.UpdatedAt), c.ID)
	}
	return w.Flush()
}

func runChatNew(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	title := "Nová konverzácia"
	if len(args) == 1 {
		title = args[0]
	}

	chat, err := a.client.Chats.Create(cmdContext(cmd), title)
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(chat)
	}
	fmt.Printf("%s Conversation started: %s (id %s)\n", colorGreen("✓"), chat.Title, chat.ID)
	return nil
}

func runChatSend(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	chatID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid chat id: %w", err)
	}

	ctx, cancel := timeoutFor(aiTimeout)
	defer cancel()

	// Attachments are uploaded first, then linked by id in the message.
	var attachmentIDs []uuid.UUID
	paths, _ := cmd.Flags().GetStringSlice("attach")
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open attachment: %w", err)
		}
		att, err := a.client.Attachments.Upload(ctx, filepath.Base(path), f)
		f.Close()
		if err != nil {
			return printError(err)
		}
		attachmentIDs = append(attachmentIDs, att.ID)
	}

	pair, err := a.client.Chats.Send(ctx, chatID, pocketbuddy.SendMessageRequest{
		Content:       args[1],
		AttachmentIDs: attachmentIDs,
	})
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(pair)
	}
	if pair.AIMessage != nil {
		fmt.Println(pair.AIMessage.Content)
	}
	return nil
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	chatID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid chat id: %w", err)
	}

	messages, err := a.client.Chats.Messages(cmdContext(cmd), chatID)
	if err != nil {
		return printError(err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"messages": messages, "count": len(messages)})
	}

	if len(messages) == 0 {
		fmt.Println("No messages yet")
		return nil
	}

	for _, m := range messages {
		label := colorGreen("you")
		if m.SenderType == pocketbuddy.SenderAI {
			label = colorYellow("ai ")
		}
		fmt.Printf("[%s] %s  %s\n", formatTime(m.CreatedAt), label, m.Content)
		for _, att := range m.Attachments {
			fmt.Printf("%s attachment: %s (%s)\n", strings.Repeat(" ", 19), att.FileName, a.client.Attachments.DownloadURL(att.ID))
		}
	}
	return nil
}

func runChatDelete(cmd *cobra.Command, args []string) error {
	a, err := authedApp(cmd)
	if err != nil {
		return err
	}

	chatID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid chat id: %w", err)
	}

	if !confirm(fmt.Sprintf("Delete conversation %s?", chatID)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.Chats.Delete(cmdContext(cmd), chatID); err != nil {
		return printError(err)
	}
	fmt.Printf("%s Conversation deleted: %s\n", colorGreen("✓"), chatID)
	return nil
}
