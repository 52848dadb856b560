package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schoolportal/portal/internal/app"
	"github.com/schoolportal/portal/internal/auth"
	"github.com/schoolportal/portal/internal/messaging"
	"github.com/schoolportal/portal/internal/service/inbox"
	"github.com/schoolportal/portal/internal/store"
)

const dateFormat = "Jan 2, 2006 15:04"

func newInboxCommand(opts *rootOptions) *cobra.Command {
	var userID, search string

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List a user's conversations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, sess, closeFn, err := openInbox(cmd.Context(), opts, userID)
			if err != nil {
				return err
			}
			defer closeFn()

			listing, err := svc.Inbox(cmd.Context(), sess, search)
			if err != nil {
				return err
			}
			renderListing(cmd.OutOrStdout(), listing)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "current user id")
	cmd.Flags().StringVar(&search, "search", "", "filter by the other participant's name")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// openInbox opens the configured store and builds a session for userID.
func openInbox(ctx context.Context, opts *rootOptions, userID string) (*inbox.Service, auth.Session, func(), error) {
	cfg, logger, err := opts.load()
	if err != nil {
		return nil, auth.Session{}, nil, err
	}

	st, err := app.OpenStore(cfg, logger)
	if err != nil {
		return nil, auth.Session{}, nil, err
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}

	user, err := st.GetUserByID(ctx, userID)
	if err != nil {
		closeFn()
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.Session{}, nil, fmt.Errorf("unknown user %q", userID)
		}
		return nil, auth.Session{}, nil, err
	}

	return inbox.New(st, logger), auth.Session{UserID: user.ID, Role: user.Role}, closeFn, nil
}

func renderListing(w io.Writer, l *messaging.Listing) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	bold := color.New(color.Bold)

	switch l.State() {
	case messaging.StateNoConversations:
		_, _ = yellow.Fprintln(w, "No conversations yet.")
		return
	case messaging.StateNoMatch:
		_, _ = yellow.Fprintf(w, "No conversations match %q.\n", l.Query)
		return
	}

	for _, e := range l.Entries {
		name := e.OtherUser.Name
		if e.UnreadCount > 0 {
			name = bold.Sprintf("%s (%d unread)", name, e.UnreadCount)
		}
		_, _ = fmt.Fprintf(w, "%-8s %s  %s\n", e.Conversation.ID, name, cyan.Sprint(formatStamp(e.LastMessage.Date)))
		_, _ = fmt.Fprintf(w, "         %s: %s\n", e.LastMessage.Subject, truncate(e.LastMessage.Content, 60))
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func formatStamp(t time.Time) string {
	return t.UTC().Format(dateFormat)
}
