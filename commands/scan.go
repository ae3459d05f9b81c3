// commands/scan.go
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/codesentry/internal/session"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze code for vulnerabilities",
	Long: `Runs the local pattern scan over code given with --code, read from --file, or piped on stdin,
and reports each finding with its line, snippet and recommendation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}

		if list, _ := cmd.Flags().GetBool("list-rules"); list {
			data := [][]string{{"ID", "Vulnerability", "Risk", "Enabled"}}
			for _, r := range env.newScanner().Rules() {
				data = append(data, []string{r.ID, r.Name, string(r.Risk), fmt.Sprint(!r.Disabled)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(env.out).Render()
		}

		if min, _ := cmd.Flags().GetString("min-risk"); min != "" {
			env.cfg.MinRisk = min
			if err := env.cfg.Validate(); err != nil {
				return err
			}
		}

		code, err := readCode(cmd)
		if err != nil {
			return err
		}
		s := &session.Session{}
		s.SetCode(code)

		notify, _ := cmd.Flags().GetBool("notify")
		return analyzeCode(cmd.Context(), env, s, notify)
	},
}

func readCode(cmd *cobra.Command) (string, error) {
	if code, _ := cmd.Flags().GetString("code"); code != "" {
		return code, nil
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("error reading file %s: %w", file, err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		// a terminal means nothing was piped in
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	scanCmd.Flags().String("code", "", "Code to analyze")
	scanCmd.Flags().StringP("file", "f", "", "File whose contents to analyze")
	scanCmd.Flags().String("min-risk", "", "Only report findings at or above LOW, MEDIUM, HIGH or CRITICAL")
	scanCmd.Flags().Bool("list-rules", false, "List the scanner rules and exit")
	scanCmd.Flags().Bool("notify", false, "Post the findings to the configured Slack webhook")
	rootCmd.AddCommand(scanCmd)
}
