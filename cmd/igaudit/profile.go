package main

import (
	"github.com/spf13/cobra"
)

var (
	auditPosts           int
	auditCommentsPerPost int
)

// profileCmd fetches counts only, no post visits
var profileCmd = &cobra.Command{
	Use:   "profile <username-or-url>",
	Short: "Fetch a profile's follower, following and post counts",
	Example: `  # By username
  igaudit profile natgeo

  # By profile URL
  igaudit profile https://www.instagram.com/natgeo/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := setup()
		if err != nil {
			return err
		}

		basic, err := engine.ProfileBasic(args[0])
		if err != nil {
			return err
		}
		return writeReport(basic)
	},
}

// auditCmd runs the full engagement audit
var auditCmd = &cobra.Command{
	Use:   "audit <username-or-url>",
	Short: "Audit recent posts and comments for engagement quality",
	Long: `Audit visits the profile's recent posts, samples their comments, and
derives engagement metrics with an additive risk score.

Post and comment budgets are clamped into safe bounds; a post whose
comments cannot be extracted stays in the snapshot with an empty sample.`,
	Example: `  # Default budgets (30 posts, 30 comments each)
  igaudit audit natgeo

  # Wider post window, skip comments entirely
  igaudit audit natgeo --posts 60 --comments-per-post 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := setup()
		if err != nil {
			return err
		}

		snapshot, err := engine.ProfileAudit(args[0], auditPosts, auditCommentsPerPost)
		if err != nil {
			return err
		}
		return writeReport(snapshot)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().IntVar(&auditPosts, "posts", 30, "number of recent posts to sample (5-60)")
	auditCmd.Flags().IntVar(&auditCommentsPerPost, "comments-per-post", 30, "comments to sample per post (0-80)")
}
