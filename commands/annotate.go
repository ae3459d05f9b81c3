package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/codesentry/internal/annotate"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate a file with saved \"<line>: <message>\" errors",
	Long: `Appends "  # Error: <message>" to every line of --file named by a "<line>: <message>" entry
in --errors (use - for stdin). Entries without a numeric line prefix are ignored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		errorsPath, _ := cmd.Flags().GetString("errors")
		if file == "" || errorsPath == "" {
			return fmt.Errorf("both --file and --errors are required")
		}

		src, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading file %s: %w", file, err)
		}

		var errText []byte
		if errorsPath == "-" {
			errText, err = io.ReadAll(cmd.InOrStdin())
		} else {
			errText, err = os.ReadFile(errorsPath)
		}
		if err != nil {
			return fmt.Errorf("error reading errors %s: %w", errorsPath, err)
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), annotate.Annotate(string(src), annotate.SplitResponse(string(errText))))
		return err
	},
}

func init() {
	annotateCmd.Flags().StringP("file", "f", "", "Source file to annotate")
	annotateCmd.Flags().StringP("errors", "e", "", "File holding the model reply, or - for stdin")
	rootCmd.AddCommand(annotateCmd)
}
