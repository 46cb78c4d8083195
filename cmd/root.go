package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/spf13/cobra"
	"josephlewis.net/minsh/core"
	"josephlewis.net/minsh/core/config"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands.
// Running it starts the interpreter over standard input.
var rootCmd = &cobra.Command{
	Use:   "minsh",
	Short: "A small job-control shell",
	Long: `A line-oriented command interpreter with built-in commands,
I/O redirection and foreground/background job control.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		shell, err := core.NewShell(configuration)
		if err != nil {
			return err
		}
		defer shell.Close()

		return shell.Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
