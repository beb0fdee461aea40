// Package rulesync assembles the cobra command tree. Each subcommand is
// thin: resolve inputs, call the matching pkg/commands verb, render the
// result in the requested format.
package rulesync

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/rulesync/internal/version"
	"github.com/arthur-debert/rulesync/pkg/commands/genconfig"
	"github.com/arthur-debert/rulesync/pkg/commands/initialize"
	"github.com/arthur-debert/rulesync/pkg/commands/list"
	synccmd "github.com/arthur-debert/rulesync/pkg/commands/sync"
	"github.com/arthur-debert/rulesync/pkg/commands/watch"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "rulesync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but exit non-zero
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newSyncCmd() *cobra.Command {
	var (
		rulesFile string
		mappings  []string
		backup    bool
	)

	cmd := &cobra.Command{
		Use:     "sync [targets...]",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			log.Info().
				Strs("targets", args).
				Bool("dry_run", dryRun).
				Msg("Syncing rules document")

			result, err := synccmd.Sync(cmd.Context(), synccmd.SyncOptions{
				RulesFile:   rulesFile,
				TargetNames: args,
				Mappings:    mappings,
				DryRun:      dryRun,
				Backup:      backup,
			})
			if err != nil {
				return fmt.Errorf(MsgErrSync, err)
			}

			return renderSyncResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", MsgFlagRules)
	cmd.Flags().StringArrayVar(&mappings, "map", nil, MsgFlagMap)
	cmd.Flags().BoolVar(&backup, "backup", false, MsgFlagBackup)

	return cmd
}

func newListCmd() *cobra.Command {
	var (
		rulesFile string
		mappings  []string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := list.List(list.ListOptions{
				RulesFile: rulesFile,
				Mappings:  mappings,
			})
			if err != nil {
				return fmt.Errorf(MsgErrList, err)
			}

			return renderListResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", MsgFlagRules)
	cmd.Flags().StringArrayVar(&mappings, "map", nil, MsgFlagMap)

	return cmd
}

func newInitCmd() *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := initialize.InitRules(initialize.InitRulesOptions{
				Path: rulesFile,
			})
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			fmt.Printf(MsgInitCreated, result.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", MsgFlagRules)

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var (
		write     bool
		cfgFormat string
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := genconfig.GenConfig(genconfig.GenConfigOptions{
				Write:     write,
				Format:    cfgFormat,
				Effective: effective,
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}

			if write {
				for _, path := range result.FilesWritten {
					fmt.Printf("Written %s\n", path)
				}
				return nil
			}

			fmt.Print(result.ConfigContent)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().StringVar(&cfgFormat, "format", "toml", MsgFlagCfgFmt)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffect)

	return cmd
}

func newWatchCmd() *cobra.Command {
	var (
		rulesFile string
		mappings  []string
		backup    bool
	)

	cmd := &cobra.Command{
		Use:     "watch [targets...]",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := watch.WatchOptions{
				Sync: synccmd.SyncOptions{
					RulesFile:   rulesFile,
					TargetNames: args,
					Mappings:    mappings,
					DryRun:      dryRun,
					Backup:      backup,
				},
				OnSync: func(result *synccmd.SyncResult, err error) {
					if err != nil {
						fmt.Fprintf(os.Stderr, "sync failed: %v\n", err)
						return
					}
					_ = renderSyncResult(cmd, result)
				},
			}

			p, err := paths.New(rulesFile)
			if err != nil {
				return err
			}
			fmt.Printf(MsgWatchStarted, p.RulesFile())

			return watch.Watch(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", MsgFlagRules)
	cmd.Flags().StringArrayVar(&mappings, "map", nil, MsgFlagMap)
	cmd.Flags().BoolVar(&backup, "backup", false, MsgFlagBackup)

	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
