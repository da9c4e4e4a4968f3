package main

import (
	"github.com/spf13/cobra"
)

var (
	sampleSize int
	delayMS    int
)

// followersCmd samples and classifies the follower list
var followersCmd = &cobra.Command{
	Use:   "followers <username-or-url>",
	Short: "Sample the follower list and classify likely-fake accounts",
	Long: `Followers opens the profile's follower dialog, scrolls it to collect a
bounded sample of handles, then resolves each handle's public counts and
classifies it with additive bot heuristics.

Each resolution is paced by the configured delay. A follower whose
profile cannot be fetched is kept as a zeroed record so the sample
accounting stays honest.`,
	Example: `  # Default sample of 200 followers
  igaudit followers natgeo

  # Smaller sample with slower pacing
  igaudit followers natgeo --sample-size 50 --delay-ms 1500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := setup()
		if err != nil {
			return err
		}

		result, err := engine.FollowerAudit(args[0], sampleSize, delayMS)
		if err != nil {
			return err
		}
		return writeReport(result)
	},
}

func init() {
	rootCmd.AddCommand(followersCmd)

	followersCmd.Flags().IntVar(&sampleSize, "sample-size", 200, "follower handles to collect (50-500)")
	followersCmd.Flags().IntVar(&delayMS, "delay-ms", 700, "delay between follower lookups in milliseconds (300-2000)")
}
