package command

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/spf13/cobra"

	"kweezy.app/server/internal/reader"
)

var readCmd = &cobra.Command{
	Use:   "read <novelID>",
	Short: "Read a novel, resuming from the last position",
	Long: `Opens a novel and resumes at the furthest chapter found in the local
scroll cache, or at the first chapter for an unread novel. Press Enter to
advance to the next segment, type a chapter number to jump, or q to quit.
The position is saved locally every few seconds and on exit, and synced to
the server when a token is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		novelID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid novel ID: %s", args[0])
		}

		client := newClient()
		store := openStore()

		novel, err := client.GetNovel(novelID)
		if err != nil {
			return fmt.Errorf("failed to load novel: %w", err)
		}
		if len(novel.Chapters) == 0 {
			fmt.Println("This novel has no chapters yet.")
			return nil
		}

		chapter, scrollY := resumeChapter(store, novel)
		return readLoop(client, store, novel, chapter, scrollY)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}

// resumeChapter prefers the local cache over the server-side progress:
// the cache reflects this device, the server the account.
func resumeChapter(store *reader.Store, novel *reader.Novel) (reader.Chapter, float64) {
	if pos := reader.ResolvePosition(store, novel.ID, novel.Chapters); pos != nil {
		for _, ch := range novel.Chapters {
			if ch.ID == pos.ChapterID {
				fmt.Printf("Resuming at chapter %d.\n", ch.ChapterNumber)
				return ch, pos.ScrollY
			}
		}
	}

	if novel.UserProgress != nil {
		for _, ch := range novel.Chapters {
			if ch.ID == novel.UserProgress.LastReadChapterID {
				fmt.Printf("Resuming at chapter %d (from server).\n", ch.ChapterNumber)
				return ch, novel.UserProgress.LastReadScrollY
			}
		}
	}

	return novel.Chapters[0], 0
}

func readLoop(client *reader.Client, store *reader.Store, novel *reader.Novel, chapter reader.Chapter, scrollY float64) error {
	var currentChapter atomic.Int64
	var currentOffset atomic.Int64
	currentChapter.Store(chapter.ID)
	currentOffset.Store(int64(scrollY))

	saver := reader.NewAutosaver(store, client, novel.ID, func() (int64, float64) {
		return currentChapter.Load(), float64(currentOffset.Load())
	}, 0)
	saver.Start()
	defer saver.Close()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		segments, err := client.GetChapterSegments(chapter.ID)
		if err != nil {
			return fmt.Errorf("failed to load chapter %d: %w", chapter.ChapterNumber, err)
		}

		preloaded := reader.PreloadComments(client, segments)

		fmt.Printf("\n=== %s - Chapter %d", novel.Title, chapter.ChapterNumber)
		if chapter.Title != "" {
			fmt.Printf(": %s", chapter.Title)
		}
		fmt.Println(" ===")

		start := int(currentOffset.Load())
		if start >= len(segments) {
			start = 0
		}

		jumped := false
		for i := start; i < len(segments); i++ {
			seg := segments[i]
			currentOffset.Store(int64(i))

			fmt.Printf("\n%s\n", seg.TextContent)
			if page := preloaded[seg.ID]; page != nil && len(page.Comments) > 0 {
				fmt.Printf("  [%d comment(s), top: %s]\n", len(page.Comments), page.Comments[0].CommentText)
			}

			if !scanner.Scan() {
				return nil
			}
			input := scanner.Text()
			if input == "q" {
				return nil
			}
			if n, err := strconv.Atoi(input); err == nil {
				if next, ok := findChapter(novel, n); ok {
					chapter = next
					currentChapter.Store(chapter.ID)
					currentOffset.Store(0)
					jumped = true
					break
				}
				fmt.Printf("No chapter %d.\n", n)
			}
		}

		if !jumped && currentOffset.Load() == int64(len(segments)-1) {
			next, ok := findChapter(novel, chapter.ChapterNumber+1)
			if !ok {
				fmt.Println("\nYou reached the end.")
				return nil
			}
			chapter = next
			currentChapter.Store(chapter.ID)
			currentOffset.Store(0)
		}
	}
}

func findChapter(novel *reader.Novel, number int) (reader.Chapter, bool) {
	for _, ch := range novel.Chapters {
		if ch.ChapterNumber == number {
			return ch, true
		}
	}
	return reader.Chapter{}, false
}
