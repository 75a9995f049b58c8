package coremain

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pmkol/linkx/mlog"
)

// Version is set at build time.
var Version = "dev"

type runFlags struct {
	c     string
	dir   string
	watch bool
}

var rootCmd = &cobra.Command{
	Use: "linkx",
}

func init() {
	rf := new(runFlags)
	runCmd := &cobra.Command{
		Use:   "run [-c script_file] [-d working_dir] [--watch]",
		Short: "Run a list script.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return StartScript(ctx, rf)
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	rootCmd.AddCommand(runCmd)
	fs := runCmd.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "script file")
	fs.StringVarP(&rf.dir, "dir", "d", "", "working dir")
	fs.BoolVarP(&rf.watch, "watch", "w", false, "re-run the script when the file changes")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	})
}

func Run() error {
	return rootCmd.Execute()
}

func StartScript(ctx context.Context, rf *runFlags) error {
	if len(rf.dir) > 0 {
		err := os.Chdir(rf.dir)
		if err != nil {
			return fmt.Errorf("failed to change the current working directory, %w", err)
		}
		mlog.L().Info("working directory changed", zap.String("path", rf.dir))
	}

	cfg, fileUsed, err := loadFullConfig(rf.c)
	if err != nil {
		return err
	}

	m, err := NewLinkx(cfg)
	if err != nil {
		return fmt.Errorf("failed to init linkx, %w", err)
	}
	defer m.Close()

	if !rf.watch {
		return m.RunScript(ctx, cfg, os.Stdout)
	}
	return m.Watch(ctx, fileUsed, cfg, os.Stdout)
}

// loadFullConfig loads a script and merges its includes.
func loadFullConfig(filePath string) (*Config, string, error) {
	cfg, fileUsed, err := loadConfig(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("fail to load config, %w", err)
	}
	if err := mergeInclude(cfg, 0, []string{fileUsed}); err != nil {
		return nil, "", fmt.Errorf("failed to load sub config file, %w", err)
	}
	return cfg, fileUsed, nil
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "script".
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("script")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
		cfg.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// mergeInclude prepends the lists and ops of included files.
// Lists defined by cfg win over included ones.
func mergeInclude(cfg *Config, depth int, paths []string) error {
	depth++
	if depth > 8 {
		return fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	included := new(Config)
	for _, subCfgFile := range cfg.Include {
		subPaths := append(paths, subCfgFile)
		mlog.L().Info("reading sub config", zap.String("file", subCfgFile))
		subCfg, _, err := loadConfig(subCfgFile)
		if err != nil {
			return fmt.Errorf("failed to load sub config, %w", err)
		}
		if err := mergeInclude(subCfg, depth, subPaths); err != nil {
			return err
		}

		if included.Lists == nil {
			included.Lists = make(map[string][]any)
		}
		for name, vs := range subCfg.Lists {
			included.Lists[name] = vs
		}
		included.Ops = append(included.Ops, subCfg.Ops...)
	}

	if len(included.Lists) > 0 {
		if cfg.Lists == nil {
			cfg.Lists = make(map[string][]any)
		}
		for name, vs := range included.Lists {
			if _, ok := cfg.Lists[name]; !ok {
				cfg.Lists[name] = vs
			}
		}
	}
	cfg.Ops = append(included.Ops, cfg.Ops...)
	return nil
}
