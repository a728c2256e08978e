// Package cmd provides command-line interface commands for greeter
package cmd

import (
	stdctx "context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/app"
	"github.com/yeisme/greeter/pkg/context"
	log2 "github.com/yeisme/greeter/pkg/utils/log"
	"github.com/yeisme/greeter/pkg/utils/version"
)

var (
	greeterCtx *context.GreeterContext
	log        log2.Logger

	// Global flags
	globalFlags    = context.GlobalFlags{}
	cpuProfileFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "greeter",
	Short: "greeter serves a fixed greeting on GET /",
	Long: `greeter is a minimal HTTP server that answers GET / with a fixed plain text greeting.

The listening port comes from the PORT environment variable and falls back to 8080.
Running greeter without a subcommand starts the server.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if globalFlags.VersionEnable {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return nil
		}
		return runServer(cmd.Context(), app.Options{})
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cpuProfileFlag != "" {
			f, err := os.Create(cpuProfileFlag)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
		}

		ctx, err := context.InitGreeterContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}

		greeterCtx = ctx
		log = ctx.Logger

		log.Debug().Msgf("Execute Command: %s %s", "greeter", strings.Join(os.Args[1:], " "))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cpuProfileFlag != "" {
			pprof.StopCPUProfile()
		}
	},
}

// runServer 在收到 SIGINT/SIGTERM 前持续提供服务
func runServer(parent stdctx.Context, opts app.Options) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, greeterCtx, opts)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// 绑定失败或配置错误时以非零状态码退出，优雅关闭时返回 0
func Execute() {
	if err := rootCmd.ExecuteContext(stdctx.Background()); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("greeter failed")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&cpuProfileFlag, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
