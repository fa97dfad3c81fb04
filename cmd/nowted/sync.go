// ABOUTME: Sync subcommand for Charm cloud integration.
// ABOUTME: Provides status, link, unlink, now, repair, reset and wipe for the charm backend.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harper/nowted/internal/config"
	"github.com/harper/nowted/internal/store"
	"github.com/spf13/cobra"
)

var errNotCharm = errors.New("sync needs the charm backend; set backend: charm or pass --backend charm")

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage Charm cloud sync",
	Long: `Sync your notebook to the Charm cloud when the charm backend is in use.

Charm uses SSH key authentication - no passwords needed.
With auto_sync enabled, data syncs after each change.

Examples:
  nowted sync status
  nowted sync link --host charm.example.com
  nowted sync now`,
}

func charmBackend() (*store.Charm, error) {
	c, ok := dataBase.Backend().(*store.Charm)
	if !ok {
		return nil, errNotCharm
	}
	return c, nil
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Charm Sync Status")
		fmt.Println(strings.Repeat("-", 40))

		fmt.Printf("Config:    %s\n", config.ConfigPath())
		fmt.Printf("Backend:   %s\n", cfg.Backend)
		fmt.Printf("Host:      %s\n", valueOrNone(cfg.CharmHost))
		if cfg.AutoSync {
			fmt.Printf("Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Printf("Auto-sync: %s\n", color.YellowString("disabled"))
		}

		c, err := charmBackend()
		if err != nil {
			fmt.Println()
			fmt.Printf("Status:    %s\n", color.YellowString("local only"))
			return nil
		}

		user, err := c.User()
		fmt.Println()
		if err != nil || user == nil {
			fmt.Printf("Status:    %s\n", color.YellowString("not linked"))
			fmt.Println("\nRun 'nowted sync link' to connect to Charm cloud.")
			return nil
		}
		fmt.Printf("User ID:   %s\n", user.CharmID)
		fmt.Printf("Name:      %s\n", valueOrNone(user.Name))
		fmt.Printf("Status:    %s\n", color.GreenString("connected"))
		if last := c.LastSyncTime(); !last.IsZero() {
			fmt.Printf("Last sync: %s\n", last.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Connect to Charm cloud",
	Long: `Link this device to Charm cloud and make charm the configured backend.

Your SSH keys are used automatically - no passwords needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		if host != "" {
			cfg.CharmHost = host
		}
		cfg.Backend = config.BackendCharm
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		c, err := charmBackend()
		if err != nil || host != "" {
			c, err = store.NewCharm(cfg.CharmHost, store.WithAutoSync(cfg.AutoSync))
			if err != nil {
				return err
			}
			defer c.Close()
		}
		if err := c.Link(); err != nil {
			return fmt.Errorf("link failed: %w", err)
		}

		user, err := c.User()
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		color.Green("\n✓ Linked to Charm cloud")
		fmt.Printf("  User ID: %s\n", user.CharmID)
		if user.Name != "" {
			fmt.Printf("  Name:    %s\n", user.Name)
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmBackend()
		if err != nil {
			return err
		}

		fmt.Println("This will disconnect this device from Charm cloud.")
		fmt.Print("\nType 'unlink' to confirm: ")
		if readLine() != "unlink" {
			fmt.Println("Aborted.")
			return nil
		}

		if err := c.Unlink(); err != nil {
			return fmt.Errorf("unlink failed: %w", err)
		}
		color.Green("✓ Unlinked from Charm cloud")
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmBackend()
		if err != nil {
			return err
		}
		if err := c.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		repo.Reload()
		color.Green("✓ Synced")
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local sync database",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing database...")
		result, err := charmkv.Repair(store.CharmDBName, force)
		if err != nil {
			return fmt.Errorf("repair failed: %w", err)
		}

		if result.IntegrityOK {
			color.Green("✓ Database repaired successfully")
		} else {
			color.Yellow("⚠ Repair completed but integrity issues remain")
			fmt.Println("Consider running 'nowted sync reset'")
		}
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local sync data (keeps cloud data)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will reset local sync data.")
		if !promptYesNo("Continue?") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := charmkv.Reset(store.CharmDBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Local sync data reset")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Wipe all sync data and start fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will DELETE all notebook data in Charm cloud and locally.")
		color.Yellow("This cannot be undone!")
		fmt.Print("\nType 'wipe' to confirm: ")
		if readLine() != "wipe" {
			fmt.Println("Aborted.")
			return nil
		}

		result, err := charmkv.Wipe(store.CharmDBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		fmt.Printf("  Deleted %d cloud backups, %d local files\n", result.CloudBackupsDeleted, result.LocalFilesDeleted)
		color.Green("✓ All sync data wiped")
		return nil
	},
}

func readLine() string {
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// valueOrNone returns "(not set)" if the string is empty.
func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func init() {
	syncLinkCmd.Flags().String("host", "", "Charm server host")
	syncRepairCmd.Flags().Bool("force", false, "Force repair even if integrity check fails")

	syncCmd.AddCommand(syncStatusCmd, syncLinkCmd, syncUnlinkCmd, syncNowCmd,
		syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
