package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schoolportal/portal/internal/service/inbox"
)

func newThreadCommand(opts *rootOptions) *cobra.Command {
	var userID, conversationID string

	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Print a conversation thread",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, sess, closeFn, err := openInbox(cmd.Context(), opts, userID)
			if err != nil {
				return err
			}
			defer closeFn()

			thread, err := svc.Thread(cmd.Context(), sess, conversationID)
			if err != nil {
				return err
			}
			renderThread(cmd.OutOrStdout(), thread, sess.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "current user id")
	cmd.Flags().StringVar(&conversationID, "conversation", "", "conversation id")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("conversation")
	return cmd
}

func renderThread(w io.Writer, t *inbox.Thread, currentUserID string) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.Faint)

	_, _ = cyan.Fprintf(w, "Conversation with %s (%s)\n", t.OtherUser.Name, t.OtherUser.Role.Title())
	if len(t.Items) == 0 {
		_, _ = dim.Fprintln(w, "No messages yet.")
		return
	}

	for _, it := range t.Items {
		m := it.Message
		if it.GroupStart {
			sender := t.OtherUser.Name
			printer := cyan
			if m.SenderID == currentUserID {
				sender = "You"
				printer = green
			}
			_, _ = fmt.Fprintln(w)
			_, _ = printer.Fprintf(w, "%s\n", sender)
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", dim.Sprint(formatStamp(m.Date)), m.Subject)
		_, _ = fmt.Fprintf(w, "  %s\n", m.Content)
	}
}
