// commands/check.go
package commands

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check code files for OWASP compliance",
	Long: `Sends every file under the folder to the configured language model, one request per file,
and prints each file with the reported lines annotated, followed by the model's reply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}

		if p, _ := cmd.Flags().GetString("provider"); p != "" {
			env.cfg.Compliance.Provider = p
		}
		if m, _ := cmd.Flags().GetString("model"); m != "" {
			env.cfg.Compliance.Model = m
		}
		if err := env.cfg.Validate(); err != nil {
			return err
		}

		notify, _ := cmd.Flags().GetBool("notify")
		return checkCompliance(cmd.Context(), env, sessionFromFlags(cmd), notify)
	},
}

func init() {
	addFolderFlags(checkCmd)
	checkCmd.Flags().String("provider", "", "Model provider: openai or bedrock (overrides compliance.provider)")
	checkCmd.Flags().String("model", "", "Model name or Bedrock model ID (overrides compliance.model)")
	checkCmd.Flags().Bool("notify", false, "Post a summary to the configured Slack webhook")
	rootCmd.AddCommand(checkCmd)
}
