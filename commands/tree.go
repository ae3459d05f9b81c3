package commands

import (
	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/codesentry/internal/session"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the folder tree",
	Long:  `Lists every folder and file under --path (a local folder or s3://bucket/prefix), or under the folder of --file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		return showTree(cmd.Context(), env, sessionFromFlags(cmd), plain)
	},
}

// sessionFromFlags builds the session the way the menu would: a selected
// file wins over a typed folder path.
func sessionFromFlags(cmd *cobra.Command) *session.Session {
	s := &session.Session{}
	path, _ := cmd.Flags().GetString("path")
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		s.SelectFile(file)
	} else {
		s.SetFolder(path)
	}
	return s
}

func addFolderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("path", "p", "", "Folder to use (local path or s3://bucket/prefix)")
	cmd.Flags().StringP("file", "f", "", "A file inside the folder to use; its directory becomes the folder")
}

func init() {
	addFolderFlags(treeCmd)
	treeCmd.Flags().Bool("plain", false, "Print the tree as indented text instead of a drawn tree")
	rootCmd.AddCommand(treeCmd)
}
