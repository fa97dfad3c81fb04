// ABOUTME: Folder commands: list, add, rename, rm, restore, trash and select.
// ABOUTME: Removing a folder asks for confirmation unless --force is given.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harper/nowted/internal/notebook"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:     "folder",
	Aliases: []string{"folders"},
	Short:   "Manage folders",
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		folders := repo.Folders()
		if len(folders) == 0 {
			fmt.Println("No folders.")
			return nil
		}
		fmt.Print(ui.FormatFolderList(folders, repo.Selected()))
		return nil
	},
}

var folderAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := repo.CreateFolder(args[0])
		if errors.Is(err, notebook.ErrEmptyTitle) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Created folder %s", folder.Title)))
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <id-or-title> <new-title>",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, ok := repo.Folder(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", notebook.ErrFolderNotFound, args[0])
		}
		err := repo.RenameFolder(folder.ID, args[1])
		if errors.Is(err, notebook.ErrEmptyTitle) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to rename folder: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Renamed folder %s to %s", folder.Title, strings.TrimSpace(args[1]))))
		return nil
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm <id-or-title>",
	Short: "Move a folder to the trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		folder, ok := repo.Folder(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", notebook.ErrFolderNotFound, args[0])
		}

		var confirm notebook.Confirmer = notebook.Always
		if !force {
			confirm = notebook.ConfirmFunc(promptYesNo)
		}
		deleted, err := repo.DeleteFolder(folder.ID, confirm)
		if err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		if !deleted {
			fmt.Println("Cancelled.")
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Moved folder %s to trash", folder.Title)))
		return nil
	},
}

var folderRestoreCmd = &cobra.Command{
	Use:   "restore <id-or-title>",
	Short: "Restore a folder from the trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, ok := repo.TrashedFolder(args[0])
		if !ok {
			return fmt.Errorf("%w in trash: %s", notebook.ErrFolderNotFound, args[0])
		}
		if err := repo.RestoreFolder(folder.ID); err != nil {
			return fmt.Errorf("failed to restore folder: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Restored folder %s", folder.Title)))
		return nil
	},
}

var folderTrashCmd = &cobra.Command{
	Use:   "trash",
	Short: "List folders in the trash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(ui.FormatTrash(repo.Trash()))
		return nil
	},
}

var folderSelectCmd = &cobra.Command{
	Use:   "select <title>",
	Short: "Select the folder new notes are filed under",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		if folder, ok := repo.Folder(title); ok {
			title = folder.Title
		}
		if err := repo.SelectFolder(title); err != nil {
			return fmt.Errorf("failed to select folder: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Selected folder %s", title)))
		return nil
	},
}

// promptYesNo asks on stdin and accepts y or yes.
func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	folderRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	folderCmd.AddCommand(folderListCmd, folderAddCmd, folderRenameCmd, folderRmCmd,
		folderRestoreCmd, folderTrashCmd, folderSelectCmd)
	rootCmd.AddCommand(folderCmd)
}
