package ui

import (
	"github.com/pterm/pterm"
)

func PrintBanner(version string) {
	logo := `
   ______          __                      __
  / ____/___  ____/ /__  ________  ____  / /________  __
 / /   / __ \/ __  / _ \/ ___/ _ \/ __ \/ __/ ___/ / / /
/ /___/ /_/ / /_/ /  __(__  )  __/ / / / /_/ /  / /_/ /
\____/\____/\__,_/\___/____/\___/_/ /_/\__/_/   \__, /
                                               /____/
`
	pterm.FgCyan.Println(logo)
	pterm.DefaultCenter.Println(pterm.FgGray.Sprint(version + " - OWASP code checker"))
	pterm.Println()

	pterm.DefaultBox.
		WithTitle(pterm.FgYellow.Sprint("⚠️  NOTICE ⚠️")).
		WithTitleBottomCenter().
		WithRightPadding(2).
		WithLeftPadding(2).
		Println("The compliance check uploads file contents to the configured model provider.\nOnly check code you are allowed to share with it.")

	pterm.Println()
}
