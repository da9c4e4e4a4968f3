package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"igaudit/pkg/models"
)

var (
	analyzeFollowers   int
	analyzeFollowing   int
	analyzePosts       int
	analyzeAvgLikes    int
	analyzeAvgComments int
	analyzeBio         string
	analyzeCaptions    []string
	analyzeSignalsFile string
)

// analyzeCmd runs the math-only analysis over user-supplied signals
var analyzeCmd = &cobra.Command{
	Use:   "analyze <username-or-url>",
	Short: "Estimate authenticity from coarse account signals, no scraping",
	Long: `Analyze computes the discrete Bayesian authenticity estimate, a keyword
content breakdown, the hashtag co-occurrence graph, and an advice bundle,
all from signals supplied on the command line or in a JSON file.

No browser session is needed; the command never touches the network.`,
	Example: `  # Inline signals
  igaudit analyze natgeo --followers 280000000 --following 130 --posts 30000 --avg-likes 400000

  # Signals from a JSON file
  igaudit analyze natgeo --signals signals.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := setup()
		if err != nil {
			return err
		}

		sig, err := loadSignals(args[0])
		if err != nil {
			return err
		}

		return writeReport(engine.Analyze(sig))
	},
}

// loadSignals builds AccountSignals from the --signals file when given,
// flag values otherwise. The positional reference always wins.
func loadSignals(ref string) (models.AccountSignals, error) {
	sig := models.AccountSignals{
		UsernameOrURL:  ref,
		Followers:      analyzeFollowers,
		Following:      analyzeFollowing,
		Posts:          analyzePosts,
		AvgLikes:       analyzeAvgLikes,
		AvgComments:    analyzeAvgComments,
		BioText:        analyzeBio,
		RecentCaptions: analyzeCaptions,
	}

	if analyzeSignalsFile == "" {
		return sig, nil
	}

	data, err := os.ReadFile(analyzeSignalsFile)
	if err != nil {
		return sig, fmt.Errorf("read signals file: %w", err)
	}
	if err := json.Unmarshal(data, &sig); err != nil {
		return sig, fmt.Errorf("decode signals file %s: %w", analyzeSignalsFile, err)
	}
	sig.UsernameOrURL = ref
	return sig, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&analyzeFollowers, "followers", 0, "follower count")
	analyzeCmd.Flags().IntVar(&analyzeFollowing, "following", 0, "following count")
	analyzeCmd.Flags().IntVar(&analyzePosts, "posts", 0, "post count")
	analyzeCmd.Flags().IntVar(&analyzeAvgLikes, "avg-likes", 0, "average likes per post")
	analyzeCmd.Flags().IntVar(&analyzeAvgComments, "avg-comments", 0, "average comments per post")
	analyzeCmd.Flags().StringVar(&analyzeBio, "bio", "", "bio text for the content breakdown")
	analyzeCmd.Flags().StringArrayVar(&analyzeCaptions, "caption", nil, "recent caption text (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeSignalsFile, "signals", "", "JSON file with the account signals")
}
