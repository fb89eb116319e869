package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rest1/board/internal/client"
)

var (
	success = color.New(color.FgHiGreen)
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
)

func addClientCommands(root *cobra.Command) {
	root.AddCommand(
		newJoinCommand(),
		newLoginCommand(),
		newMeCommand(),
		newStatusCommand(),
		newPostsCommand(),
		newPostCommand(),
		newWriteCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newCommentsCommand(),
		newCommentCommand(),
		newEditCommentCommand(),
		newDeleteCommentCommand(),
	)
}

func newJoinCommand() *cobra.Command {
	var username, password, nickname string
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Register a new member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := loadClient()
			if err != nil {
				return err
			}
			m, err := c.Join(username, password, nickname)
			if err != nil {
				return err
			}
			cfg.BaseURL = c.BaseURL
			if err := saveCLIConfig(cfg); err != nil {
				return err
			}
			success.Printf("✓ Joined as %s (#%d)\n", m.Name, m.ID)
			fmt.Printf("\nNext: board login --username %s --password ...\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Display name (required)")
	markRequired(cmd, "username", "password", "nickname")
	return cmd
}

func newLoginCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"auth"},
		Short:   "Log in and save the API key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadClient()
			if err != nil {
				return err
			}
			m, err := c.Login(username, password)
			if err != nil {
				return err
			}
			cfg := CLIConfig{BaseURL: c.BaseURL, Username: username, APIKey: c.APIKey}
			if err := saveCLIConfig(cfg); err != nil {
				return err
			}
			success.Printf("✓ Logged in as %s\n", m.Name)
			faint.Printf("API key saved to %s\n", cliConfigPath())
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	markRequired(cmd, "username", "password")
	return cmd
}

func newMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "me",
		Aliases: []string{"whoami"},
		Short:   "Show the logged-in member",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			m, err := c.Me()
			if err != nil {
				return err
			}
			fmt.Printf("%s #%d\n", bold.Sprint(m.Name), m.ID)
			fmt.Printf("Joined: %s\n", formatTime(m.CreateDate))
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved CLI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			fmt.Println("Config: ", cliConfigPath())
			fmt.Println("Server: ", resolveBaseURL(cfg))
			if cfg.APIKey == "" {
				fmt.Println("Member: ", color.New(color.FgHiRed).Sprint("not logged in"))
				return nil
			}
			fmt.Println("Member: ", cfg.Username)
			return nil
		},
	}
}

func newPostsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "posts",
		Aliases: []string{"list", "ls"},
		Short:   "List posts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadClient()
			if err != nil {
				return err
			}
			posts, err := c.ListPosts()
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				fmt.Println("No posts")
				return nil
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"#", "Title", "Author", "Created"})
			for _, p := range posts {
				table.Append([]string{strconv.FormatInt(p.ID, 10), p.Title, p.AuthorName, formatTime(p.CreateDate)})
			}
			table.Render()
			return nil
		},
	}
}

func newPostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "post <post-id>",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			c, _, err := loadClient()
			if err != nil {
				return err
			}
			p, err := c.GetPost(id)
			if err != nil {
				return err
			}
			comments, err := c.ListComments(id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", bold.Sprintf("#%d %s", p.ID, p.Title))
			faint.Printf("by %s, %s\n\n", p.AuthorName, formatTime(p.CreateDate))
			fmt.Println(p.Content)
			fmt.Println()
			printComments(comments)
			return nil
		},
	}
}

func newWriteCommand() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:     "write",
		Aliases: []string{"submit"},
		Short:   "Write a new post",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			p, err := c.WritePost(title, content)
			if err != nil {
				return err
			}
			success.Printf("✓ Post #%d created\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title, 2 to 10 characters (required)")
	cmd.Flags().StringVar(&content, "content", "", "Content, 2 to 100 characters (required)")
	markRequired(cmd, "title", "content")
	return cmd
}

func newEditCommand() *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "edit <post-id>",
		Short: "Modify a post you wrote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			res, err := c.ModifyPost(id, title, content)
			if err != nil {
				return err
			}
			success.Printf("✓ %s\n", res.Msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title (required)")
	cmd.Flags().StringVar(&content, "content", "", "New content (required)")
	markRequired(cmd, "title", "content")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <post-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a post you wrote, with its comments",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			res, err := c.DeletePost(id)
			if err != nil {
				return err
			}
			success.Printf("✓ %s\n", res.Msg)
			return nil
		},
	}
}

func newCommentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <post-id>",
		Short: "List the comments of a post, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			c, _, err := loadClient()
			if err != nil {
				return err
			}
			comments, err := c.ListComments(id)
			if err != nil {
				return err
			}
			printComments(comments)
			return nil
		},
	}
}

func newCommentCommand() *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "comment <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			comment, err := c.WriteComment(postID, content)
			if err != nil {
				return err
			}
			success.Printf("✓ Comment #%d on post #%d\n", comment.ID, postID)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Content, 2 to 100 characters (required)")
	markRequired(cmd, "content")
	return cmd
}

func newEditCommentCommand() *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "edit-comment <post-id> <comment-id>",
		Short: "Modify a comment you wrote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, commentID, err := parseCommentArgs(args)
			if err != nil {
				return err
			}
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			res, err := c.ModifyComment(postID, commentID, content)
			if err != nil {
				return err
			}
			success.Printf("✓ %s\n", res.Msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "New content (required)")
	markRequired(cmd, "content")
	return cmd
}

func newDeleteCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-comment <post-id> <comment-id>",
		Short: "Delete a comment you wrote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, commentID, err := parseCommentArgs(args)
			if err != nil {
				return err
			}
			c, err := loadAuthenticatedClient()
			if err != nil {
				return err
			}
			res, err := c.DeleteComment(postID, commentID)
			if err != nil {
				return err
			}
			success.Printf("✓ %s\n", res.Msg)
			return nil
		},
	}
}

func printComments(comments []client.Comment) {
	if len(comments) == 0 {
		fmt.Println("No comments")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Comment", "Author", "Created"})
	for _, c := range comments {
		table.Append([]string{strconv.FormatInt(c.ID, 10), c.Content, c.AuthorName, formatTime(c.CreateDate)})
	}
	table.Render()
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.MarkFlagRequired(name)
	}
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

func parseCommentArgs(args []string) (int64, int64, error) {
	postID, err := parseID("post", args[0])
	if err != nil {
		return 0, 0, err
	}
	commentID, err := parseID("comment", args[1])
	if err != nil {
		return 0, 0, err
	}
	return postID, commentID, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
