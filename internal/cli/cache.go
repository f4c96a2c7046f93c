package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/critpathlabs/critpath/pkg/cache"
)

// newCacheCmd creates the cache command group for managing the local
// render cache.
func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local render cache",
	}
	cmd.AddCommand(newCacheDirCmd(configPath))
	cmd.AddCommand(newCacheClearCmd(configPath))
	return cmd
}

func newCacheDirCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			dir, err := cfg.cacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}

func newCacheClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached render artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			dir, err := cfg.cacheDir()
			if err != nil {
				return err
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared render cache at %s", dir)
			return nil
		},
	}
}
