// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/casedesk/casedesk/lib/api"
	"github.com/casedesk/casedesk/lib/caseindex"
	"github.com/casedesk/casedesk/lib/schema/support"
)

const caseTimeout = 15 * time.Second

// CaseCommand groups the scripted (non-TUI) case operations.
func CaseCommand() *Command {
	return &Command{
		Name:    "case",
		Summary: "Work with cases from scripts",
		Subcommands: []*Command{
			caseListCommand(),
			caseShowCommand(),
			caseNewCommand(),
			caseEditCommand(),
			caseCommentCommand(),
			caseDeleteCommand(),
		},
	}
}

func caseListCommand() *Command {
	var status string
	var responsible string
	var insurer string
	var search string

	return &Command{
		Name:    "list",
		Summary: "List cases",
		Usage:   "casedesk case list [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&status, "status", "", "filter by status (pending, in_progress, waiting_on_client, done)")
			flags.StringVar(&responsible, "responsible", "", "filter by responsible username")
			flags.StringVar(&insurer, "insurer", "", "filter by insurer")
			flags.StringVar(&search, "search", "", "substring match on title, reference, responsible")
			return flags
		},
		Run: func(args []string) error {
			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			if status != "" && !support.Status(status).IsKnown() {
				return fmt.Errorf("unknown status %q", status)
			}

			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			defer cancel()
			cases, err := client.ListCases(ctx)
			if err != nil {
				return describeAuthError(err)
			}

			filter := caseindex.Filter{
				Search:      search,
				Status:      support.Status(status),
				Responsible: responsible,
				Insurer:     insurer,
			}
			cases = filter.Apply(cases)

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tREF\tSTATUS\tRESPONSIBLE\tINSURER\tTITLE")
			for _, entry := range cases {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					entry.ID, entry.Reference, entry.Status,
					entry.Responsible, entry.Insurer, entry.Title)
			}
			return tw.Flush()
		},
	}
}

func caseShowCommand() *Command {
	return &Command{
		Name:    "show",
		Summary: "Show one case with its comments",
		Usage:   "casedesk case show <id>",
		Run: func(args []string) error {
			id, err := parseCaseID(args)
			if err != nil {
				return err
			}
			client, saved, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			defer cancel()
			entry, err := client.GetCase(ctx, id)
			if err != nil {
				return describeAuthError(err)
			}
			comments, err := client.ListComments(ctx, id)
			if err != nil {
				return describeAuthError(err)
			}

			fmt.Printf("%s  %s\n", entry.Reference, entry.Title)
			fmt.Printf("status: %s", entry.Status)
			if entry.Responsible != "" {
				fmt.Printf("  responsible: %s", entry.Responsible)
			}
			if entry.Insurer != "" {
				fmt.Printf("  insurer: %s", entry.Insurer)
			}
			if entry.Category != "" {
				fmt.Printf("  category: %s", entry.Category)
			}
			fmt.Println()
			if len(entry.Keywords) > 0 {
				fmt.Printf("keywords: %s\n", strings.Join(entry.Keywords, ", "))
			}
			if entry.Body != "" {
				fmt.Printf("\n%s\n", entry.Body)
			}

			admin := saved.User.IsAdmin()
			fmt.Printf("\ncomments:\n")
			for _, comment := range comments {
				if comment.Internal && !admin {
					continue
				}
				tag := ""
				if comment.Internal {
					tag = " [internal]"
				}
				fmt.Printf("  %s (%s)%s: %s\n",
					comment.Author, comment.CreatedAt, tag, comment.Body)
			}
			return nil
		},
	}
}

func caseNewCommand() *Command {
	var entry support.Case
	var keywords string
	var status string

	return &Command{
		Name:    "new",
		Summary: "Open a case",
		Usage:   "casedesk case new <title> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("new", pflag.ContinueOnError)
			flags.StringVar(&entry.Body, "body", "", "case description (markdown)")
			flags.StringVar(&entry.Responsible, "responsible", "", "assignee username")
			flags.StringVar(&status, "status", string(support.StatusPending), "initial status")
			flags.StringVar(&entry.Insurer, "insurer", "", "insurer")
			flags.StringVar(&entry.Category, "category", "", "category")
			flags.StringVar(&keywords, "keywords", "", "comma-separated keywords")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: casedesk case new <title> [flags]")
			}
			entry.Title = args[0]
			entry.Status = support.Status(status)
			if keywords != "" {
				entry.Keywords = strings.Split(keywords, ",")
				for position := range entry.Keywords {
					entry.Keywords[position] = strings.TrimSpace(entry.Keywords[position])
				}
			}
			if err := entry.Validate(); err != nil {
				return err
			}

			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			defer cancel()
			created, err := client.CreateCase(ctx, entry)
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Created %s (id %d)\n", created.Reference, created.ID)
			return nil
		},
	}
}

func caseEditCommand() *Command {
	flags := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	title := flags.String("title", "", "new title")
	body := flags.String("body", "", "new description")
	responsible := flags.String("responsible", "", "new assignee")
	status := flags.String("status", "", "new status")
	insurer := flags.String("insurer", "", "new insurer")
	category := flags.String("category", "", "new category")

	return &Command{
		Name:    "edit",
		Summary: "Update fields on a case",
		Usage:   "casedesk case edit <id> [flags]",
		Flags:   func() *pflag.FlagSet { return flags },
		Run: func(args []string) error {
			id, err := parseCaseID(args)
			if err != nil {
				return err
			}

			// Only flags the user actually set become part of the
			// patch; everything else stays untouched on the server.
			var patch api.CasePatch
			changed := false
			flags.Visit(func(flag *pflag.Flag) {
				changed = true
				switch flag.Name {
				case "title":
					patch.Title = title
				case "body":
					patch.Body = body
				case "responsible":
					patch.Responsible = responsible
				case "status":
					value := support.Status(*status)
					patch.Status = &value
				case "insurer":
					patch.Insurer = insurer
				case "category":
					patch.Category = category
				}
			})
			if !changed {
				return fmt.Errorf("nothing to change — pass at least one flag")
			}

			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			defer cancel()
			updated, err := client.UpdateCase(ctx, id, patch)
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Updated %s (status %s)\n", updated.Reference, updated.Status)
			return nil
		},
	}
}

func caseCommentCommand() *Command {
	var internal bool

	return &Command{
		Name:    "comment",
		Summary: "Add a comment to a case",
		Usage:   "casedesk case comment <id> <text> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("comment", pflag.ContinueOnError)
			flags.BoolVar(&internal, "internal", false, "staff-only comment (administrators)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: casedesk case comment <id> <text>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid case id %q", args[0])
			}

			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			defer cancel()
			comment, err := client.AddComment(ctx, support.Comment{
				CaseID:   id,
				Body:     args[1],
				Internal: internal,
			})
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Comment %d added to case %d\n", comment.ID, id)
			return nil
		},
	}
}

func caseDeleteCommand() *Command {
	return &Command{
		Name:    "delete",
		Summary: "Delete a case (administrators)",
		Usage:   "casedesk case delete <id>",
		Run: func(args []string) error {
			id, err := parseCaseID(args)
			if err != nil {
				return err
			}
			client, _, err := authenticatedClient()
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			defer cancel()
			if err := client.DeleteCase(ctx, id); err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("Deleted case %d\n", id)
			return nil
		},
	}
}

func parseCaseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one case id expected")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid case id %q", args[0])
	}
	return id, nil
}
