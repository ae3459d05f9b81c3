package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/codesentry/internal/ui"
)

const version = "v1.0"

var rootCmd = &cobra.Command{
	Use:   "codesentry",
	Short: "codesentry checks source code against OWASP guidelines",
	Long: `codesentry browses a folder tree, asks a language model to review every file for
OWASP compliance and annotates the reported lines, and runs a local pattern scan
for common code vulnerabilities.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet && (format == "" || format == ui.FormatTable) && cmd.Name() != "version" {
			ui.PrintBanner(version)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	// .env is optional; it usually carries OPENAI_API_KEY.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (optional)")
	rootCmd.PersistentFlags().StringP("format", "o", "", "Output format: table, json or csv (overrides output_format)")
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region for S3, SSM and Bedrock (overrides region)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Do not print the banner")
}
