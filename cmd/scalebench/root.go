package main

import (
	"fmt"
	"os"

	"scalebench/internal/config"
	"scalebench/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd runs a sweep when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scalebench",
	Short: "Measure how a program's run time scales with thread count",
	Long: `scalebench runs an external program once for every combination of
workload size and thread count, reads the execution time it reports and
plots time against threads, one line per workload size.

The program is invoked as "<executable> <steps> <threads>" and must print a
line such as "Czas obliczen: 1.2345 s".`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	addRunFlags(rootCmd)
	rootCmd.RunE = runSweep

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newInitCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
