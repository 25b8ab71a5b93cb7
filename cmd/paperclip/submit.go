package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperclip/internal/library"
	"github.com/pdiddy/paperclip/internal/observability"
	"github.com/pdiddy/paperclip/pkg/types"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit reviewed article metadata to the library",
	Long: `Submit posts a title, abstract, and comma-separated author list to the
library service and prints the URL of the created article.

The bearer token comes from --token, library.token in the config file,
PAPERCLIP_LIBRARY_TOKEN, or .secrets/library-token.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("title", "", "article title")
	submitCmd.Flags().String("abstract", "", "article abstract")
	submitCmd.Flags().String("authors", "", "comma-separated author names")
	submitCmd.Flags().String("link", "", "article URL")
	submitCmd.Flags().String("type", "", "submission type (default from library.submission_type)")
	submitCmd.Flags().String("community", "", "community name (default from library.community_name)")
	submitCmd.Flags().String("token", "", "library auth token")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	abstract, _ := cmd.Flags().GetString("abstract")
	authors, _ := cmd.Flags().GetString("authors")
	link, _ := cmd.Flags().GetString("link")
	subType, _ := cmd.Flags().GetString("type")
	community, _ := cmd.Flags().GetString("community")
	token, _ := cmd.Flags().GetString("token")

	if token == "" {
		token = appConfig.Library.Token
	}
	if subType == "" {
		subType = appConfig.Library.SubmissionType
	}
	if community == "" {
		community = appConfig.Library.CommunityName
	}

	client := newLibraryClient(appConfig, newHTTPClient(appConfig))
	articleURL, err := client.Submit(cmd.Context(), token, types.Submission{
		Title:          title,
		Abstract:       abstract,
		Authors:        library.AuthorEntries(authors),
		ArticleLink:    link,
		SubmissionType: subType,
		CommunityName:  community,
	})
	if err != nil {
		libLogger := observability.Component(logger, "library")
		libLogger.Debug().Err(err).Msg("submission failed")
		return fmt.Errorf("%s", library.Message(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), library.Message(nil))
	fmt.Fprintln(cmd.OutOrStdout(), articleURL)
	return nil
}
