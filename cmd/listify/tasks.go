package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/listify/internal/app"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add [name...]",
		Short: "Add a task (uses the saved draft when no name is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				name := strings.Join(args, " ")
				if len(args) == 0 {
					name = a.Tasks.Draft()
				}

				task, added, err := a.Tasks.Add(ctx, name)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintln(out, "Nothing to add")
					return nil
				}
				fmt.Fprintf(out, "Added %d %s\n", task.ID, task.Name)
				return nil
			})
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				tasks := a.Tasks.Tasks()
				if len(tasks) == 0 {
					fmt.Fprintln(out, "No tasks")
				}
				for _, t := range tasks {
					mark := " "
					if t.Completed {
						mark = "x"
					}
					fmt.Fprintf(out, "[%s] %d %s\n", mark, t.ID, t.Name)
				}
				if draft := a.Tasks.Draft(); draft != "" {
					fmt.Fprintf(out, "Draft: %s\n", draft)
				}
				return nil
			})
		},
	}
}

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				return a.Tasks.ToggleCompleted(ctx, id)
			})
		},
	}
}

func newRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name...>",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				return a.Tasks.Rename(ctx, id, strings.Join(args[1:], " "))
			})
		},
	}
}

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				return a.Tasks.Remove(ctx, id)
			})
		},
	}
}

func newDraftCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "draft [text...]",
		Short: "Show or save the pending task text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				if len(args) == 0 {
					fmt.Fprintln(out, a.Tasks.Draft())
					return nil
				}
				return a.Tasks.SetDraft(ctx, strings.Join(args, " "))
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("task id must be a number")
	}
	return id, nil
}
