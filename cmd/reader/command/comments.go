package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var commentsPage int

var commentsCmd = &cobra.Command{
	Use:   "comments <segmentID>",
	Short: "Show comments on a text segment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		segmentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid segment ID: %s", args[0])
		}

		client := newClient()

		page, err := client.GetSegmentComments(segmentID, commentsPage, 10)
		if err != nil {
			return fmt.Errorf("failed to load comments: %w", err)
		}

		if len(page.Comments) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}

		for _, c := range page.Comments {
			liked := ""
			if c.LikedByCurrentUser {
				liked = " *"
			}
			fmt.Printf("[%d] %s (%d likes%s)\n    %s\n", c.ID, c.User.Username, c.LikeCount, liked, c.CommentText)
		}
		fmt.Printf("Page %d of %d\n", page.CurrentPage, page.TotalPages)
		return nil
	},
}

var postCommentCmd = &cobra.Command{
	Use:   "comment <segmentID> <text>",
	Short: "Post a comment on a text segment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		segmentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid segment ID: %s", args[0])
		}

		client := newClient()

		comment, err := client.PostComment(segmentID, args[1], nil)
		if err != nil {
			return err
		}

		fmt.Printf("Posted comment %d.\n", comment.ID)
		return nil
	},
}

func init() {
	commentsCmd.Flags().IntVar(&commentsPage, "page", 1, "comment page to show")
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(postCommentCmd)
}
