package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"minipm/internal/client"
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	Aliases: []string{"comments"},
	Short:   "Read and write task comments",
}

var commentListCmd = &cobra.Command{
	Use:   "list [task-id]",
	Short: "List a task's comments, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentList,
}

var commentAddCmd = &cobra.Command{
	Use:     "add [task-id] [text...]",
	Short:   "Add a comment to a task",
	Example: `  minipm comment add 12 "Copy is ready for review" --author lee`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runCommentAdd,
}

var commentEditCmd = &cobra.Command{
	Use:   "edit [comment-id] [text...]",
	Short: "Replace a comment's text",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCommentEdit,
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentDelete,
}

func init() {
	commentAddCmd.Flags().String("author", "", "Author name (default from profile)")
	commentDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
	commentCmd.AddCommand(commentDeleteCmd)
}

func joinText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// refetchComments prints the task's comments after a write.
func refetchComments(ctx context.Context, cmd *cobra.Command, c *client.Client, taskID string) error {
	comments, err := c.Comments(ctx, taskID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	printComments(cmd.OutOrStdout(), comments)
	return nil
}

func runCommentList(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	comments, err := c.Comments(ctx, args[0])
	if err != nil {
		return err
	}
	printComments(cmd.OutOrStdout(), comments)
	return nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	c, prof, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	author := prof.Author
	if a := optString(cmd, "author"); a != nil {
		author = *a
	}
	if _, err := c.AddComment(ctx, args[0], strings.TrimSpace(author), joinText(args[1:])); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Comment added")
	return refetchComments(ctx, cmd, c, args[0])
}

func runCommentEdit(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	cm, err := c.UpdateComment(ctx, args[0], joinText(args[1:]))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Comment updated")
	if cm == nil || cm.Task == nil {
		return nil
	}
	return refetchComments(ctx, cmd, c, cm.Task.ID)
}

func runCommentDelete(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	cm, err := c.Comment(ctx, args[0])
	if err != nil {
		return err
	}
	if cm == nil {
		return fmt.Errorf("comment %s not found", args[0])
	}
	if !confirm(cmd, cmd.InOrStdin(), fmt.Sprintf("Delete comment by %s?", cm.Author)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	res, err := c.DeleteComment(ctx, cm.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	if cm.Task == nil {
		return nil
	}
	return refetchComments(ctx, cmd, c, cm.Task.ID)
}
