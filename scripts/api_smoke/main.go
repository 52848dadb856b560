package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	transporthttp "github.com/schoolportal/portal/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Printf("api_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "http://localhost:8080", "portal base URL")
	email := flag.String("email", "parent@example.com", "demo account email")
	password := flag.String("password", "password", "demo password")
	search := flag.String("search", "", "inbox search text")
	text := flag.String("text", "hello from smoke test", "reply to post in the first conversation")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := &client{base: *addr, http: &http.Client{}}

	var login transporthttp.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", transporthttp.LoginRequest{Email: *email, Password: *password}, http.StatusOK, &login); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.token = login.Token
	fmt.Printf("Logged in as %s (%s)\n", login.User.Name, login.User.RoleTitle)

	var list transporthttp.ListResponse
	path := "/api/conversations"
	if *search != "" {
		path += "?q=" + url.QueryEscape(*search)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &list); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	fmt.Printf("Inbox state=%s conversations=%d\n", list.State, len(list.Conversations))
	for _, conv := range list.Conversations {
		fmt.Printf("  %s %s [%s] unread=%d\n", conv.ID, conv.OtherUser.Name, conv.LastMessage.DisplayDate, conv.UnreadCount)
	}
	if len(list.Conversations) == 0 {
		return nil
	}

	first := list.Conversations[0].ID
	var thread transporthttp.ThreadResponse
	if err := c.do(ctx, http.MethodGet, "/api/conversations/"+first+"/messages", nil, http.StatusOK, &thread); err != nil {
		return fmt.Errorf("thread: %w", err)
	}
	fmt.Printf("Thread %s with %s: %d messages\n", first, thread.OtherUser.Name, len(thread.Messages))

	var posted transporthttp.PostMessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/conversations/"+first+"/messages", transporthttp.PostMessageRequest{Content: *text}, http.StatusAccepted, &posted); err != nil {
		return fmt.Errorf("post: %w", err)
	}
	fmt.Printf("Posted to %s persisted=%t\n", posted.ToUserID, posted.Persisted)
	return nil
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, data)
	}
	return json.Unmarshal(data, out)
}
