package cmd

import (
	"github.com/spf13/cobra"

	"github.com/picobox/picobox/core/config"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	return config.LoadOrDefault(cfgPath)
}

// rootCmd represents the base command when called without any subcommands.
// Running the bare binary drops straight into the interactive shell.
var rootCmd = &cobra.Command{
	Use:   "picobox",
	Short: "A tiny busybox style shell",
	Long:  `A single-binary shell whose utilities run as re-executions of itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runShell("")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory (default ~/.picobox)")
}
