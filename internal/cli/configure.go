package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"timetracker/internal/config"
)

type configureFlags struct {
	domain, email, token, oauthToken, issuePrefix string
}

func newConfigureCmd(opts *rootOptions) *cobra.Command {
	var flags configureFlags

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store Jira credentials and the issue key prefix",
		Long: `Configure writes the Jira credentials into the env file. Values not given
as flags are asked for on the terminal. Either an API token with its email
or an OAuth access token is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if opts.envFile != "" {
				cfg = config.LoadConfigFile(opts.envFile)
			}
			if opts.settingsFile != "" {
				cfg.SettingsFile = opts.settingsFile
			}

			creds := cfg.Jira
			if cmd.Flags().Changed("oauth-token") {
				creds.OAuthToken = flags.oauthToken
			}
			// An OAuth token stands in for the email and API token.
			oauth := strings.TrimSpace(creds.OAuthToken) != ""

			prompter := newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			fields := []struct {
				flag   string
				label  string
				value  string
				target *string
			}{
				{"domain", "Jira domain (e.g. example.atlassian.net)", flags.domain, &creds.Domain},
				{"email", "Jira email", flags.email, &creds.Email},
				{"token", "Jira API token", flags.token, &creds.APIToken},
			}
			for _, field := range fields {
				if cmd.Flags().Changed(field.flag) {
					*field.target = field.value
					continue
				}
				if strings.TrimSpace(*field.target) != "" || (oauth && field.flag != "domain") {
					continue
				}
				answer, err := prompter.ask(field.label)
				if err != nil {
					return err
				}
				*field.target = answer
			}
			if err := config.SaveCredentials(cfg.EnvFile, creds); err != nil {
				return fmt.Errorf("save credentials: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved Jira credentials to %s\n", cfg.EnvFile)

			if cmd.Flags().Changed("issue-prefix") {
				settings, err := config.LoadSettings(cfg.SettingsFile)
				if err != nil {
					zap.L().Warn("rewriting unreadable settings file", zap.String("path", cfg.SettingsFile), zap.Error(err))
				}
				settings.IssueKeyPrefix = strings.ToUpper(strings.TrimSpace(flags.issuePrefix))
				if err := config.SaveSettings(cfg.SettingsFile, settings); err != nil {
					return fmt.Errorf("save settings: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved issue key prefix to %s\n", cfg.SettingsFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.domain, "domain", "", "Jira domain")
	cmd.Flags().StringVar(&flags.email, "email", "", "Jira account email")
	cmd.Flags().StringVar(&flags.token, "token", "", "Jira API token")
	cmd.Flags().StringVar(&flags.oauthToken, "oauth-token", "", "OAuth 2.0 access token, used instead of email and API token")
	cmd.Flags().StringVar(&flags.issuePrefix, "issue-prefix", "", "Project prefix accepted for issue keys, e.g. PROJ-")
	return cmd
}
