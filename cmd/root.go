package cmd

import (
	"os"

	"github.com/leighmacdonald/steamtech/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "steamtech",
	Short: "Discord bot answering Steam player and game queries",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/steamtech.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		config.Read(cfgFile)
		return
	}
	config.Read()
}
