package commands

import (
	"context"
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/codesentry/internal/session"
)

const (
	actionFolder  = "Enter the folder path"
	actionFile    = "Select a file from the folder"
	actionTree    = "Show Folder Tree"
	actionCheck   = "Check Code for OWASP Compliance"
	actionPaste   = "Paste code"
	actionAnalyze = "Analyze Code for Vulnerabilities"
	actionReset   = "Reset"
	actionQuit    = "Quit"
)

var menu = []string{actionFolder, actionFile, actionTree, actionCheck, actionPaste, actionAnalyze, actionReset, actionQuit}

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Work through folder browsing, compliance checks and scans from a menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		if !env.table() {
			return errors.New("interactive mode only supports table output")
		}
		return runMenu(cmd.Context(), env, &session.Session{})
	},
}

func runMenu(ctx context.Context, env *environment, s *session.Session) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		printSession(s)

		choice, err := pterm.DefaultInteractiveSelect.WithOptions(menu).WithMaxHeight(len(menu)).Show("What next?")
		if err != nil {
			return err
		}
		if choice == actionQuit {
			return nil
		}

		if err := dispatch(ctx, env, s, choice); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			pterm.Error.Println(err.Error())
		}
		pterm.Println()
	}
}

// dispatch runs one menu action. Errors are reported by the caller and the
// session carries on.
func dispatch(ctx context.Context, env *environment, s *session.Session, choice string) error {
	switch choice {
	case actionFolder:
		path, err := pterm.DefaultInteractiveTextInput.Show("Enter the folder path")
		if err != nil {
			return err
		}
		s.SetFolder(path)
	case actionFile:
		path, err := pterm.DefaultInteractiveTextInput.Show("Path of a file in the folder")
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return err
		}
		s.SelectFile(path)
		pterm.Info.Printfln("Selected folder: %s", s.FolderPath)
	case actionTree:
		return showTree(ctx, env, s, false)
	case actionCheck:
		return checkCompliance(ctx, env, s, false)
	case actionPaste:
		code, err := pterm.DefaultInteractiveTextInput.WithMultiLine(true).Show("Paste your code here")
		if err != nil {
			return err
		}
		s.SetCode(code)
	case actionAnalyze:
		return analyzeCode(ctx, env, s, false)
	case actionReset:
		s.Reset()
		pterm.Success.Println("Folder and selected file cleared")
	}
	return nil
}

func printSession(s *session.Session) {
	folder := s.FolderPath
	if folder == "" {
		folder = pterm.FgGray.Sprint("(none)")
	}
	file := s.UploadedFile
	if file == "" {
		file = pterm.FgGray.Sprint("(none)")
	}
	code := pterm.FgGray.Sprint("(none)")
	if _, err := s.Code(); err == nil {
		code = pterm.Sprintf("%d bytes", len(s.CodeInput))
	}

	_ = pterm.DefaultTable.WithData([][]string{
		{"Folder", folder},
		{"Selected file", file},
		{"Pasted code", code},
	}).Render()
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
