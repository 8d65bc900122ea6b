package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/config"
)

func (c *Cli) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local configuration and the cached remote config",
	}
	cmd.AddCommand(
		c.newConfigInitCommand(),
		c.newConfigValidateCommand(),
		c.newConfigRefreshCommand(),
		c.newConfigGetCommand(),
	)
	return cmd
}

func (c *Cli) newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigInit(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func (c *Cli) runConfigInit(force bool) error {
	path := strings.TrimSpace(c.configPath)
	var err error
	if path == "" {
		path, err = config.DefaultConfigPath()
	} else {
		path, err = config.ExpandPath(path)
	}
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}

	if err := config.CreateSample(path); err != nil {
		return err
	}
	c.io.Printf("✓ Sample configuration written to %s\n", path)
	return nil
}

func (c *Cli) newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigValidate()
		},
	}
}

// runConfigValidate вызывается после успешного loadConfig, поэтому
// остается только показать итоговые значения
func (c *Cli) runConfigValidate() error {
	if c.jsonOutput {
		return c.printJSON(c.cfg)
	}

	source := c.resolvedConfig
	if !c.configExists {
		source += " (not found, defaults used)"
	}
	c.io.Printf("✓ Configuration is valid: %s\n", source)
	c.io.Println(renderTable([]string{"Setting", "Value"}, [][]string{
		{"operator", c.cfg.Operator.ID},
		{"remote.url", c.cfg.Remote.URL},
		{"remote.timeout", c.cfg.RemoteTimeout().String()},
		{"storage.db_path", c.cfg.Storage.DBPath},
		{"network.state_file", c.cfg.Network.StateFile},
		{"network.netlink", yesNo(c.cfg.Network.Netlink)},
		{"sync.max_retries", fmt.Sprint(c.cfg.Sync.MaxRetries)},
		{"conflict.divergence_threshold", c.cfg.DivergenceThreshold().String()},
		{"observer.listen", c.cfg.Observer.Listen},
	}, nil))
	return nil
}

func (c *Cli) newConfigRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch configuration from the server and cache it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runConfigRefresh(cmd.Context(), ctrl)
			})
		},
	}
}

func (c *Cli) runConfigRefresh(ctx context.Context, ctrl Controller) error {
	n, err := ctrl.RefreshConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh config: %w", err)
	}
	if c.jsonOutput {
		return c.printJSON(map[string]int{"cached": n})
	}
	c.io.Printf("✓ Cached %d configuration entries\n", n)
	return nil
}

func (c *Cli) newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [KEY]",
		Short: "Show a cached configuration value, or list keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runConfigGet(cmd.Context(), ctrl, key)
			})
		},
	}
}

func (c *Cli) runConfigGet(ctx context.Context, ctrl Controller, key string) error {
	if key == "" {
		keys, err := ctrl.ConfigKeys(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cached config: %w", err)
		}
		if c.jsonOutput {
			return c.printJSON(keys)
		}
		if len(keys) == 0 {
			c.io.Println("No cached configuration. Run 'fieldsync config refresh'.")
			return nil
		}
		for _, k := range keys {
			c.io.Println(k)
		}
		return nil
	}

	value, err := ctrl.Config(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read cached config %q: %w", key, err)
	}
	_, err = c.io.Write(append(value, '\n'))
	return err
}
