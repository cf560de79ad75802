package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-tasktree/pkg/service"
)

var cfgFile string

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "gtt")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GTT")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "gtt"))
	viper.SetDefault("snapshot", "")
	viper.SetDefault("group_tasks", false)

	// a missing config file just means defaults
	_ = viper.ReadInConfig()
}

func InitService() (*service.Service, error) {
	config := &service.Config{
		DataDir:    viper.GetString("data_dir"),
		Snapshot:   viper.GetString("snapshot"),
		GroupTasks: viper.GetBool("group_tasks"),
	}

	return service.New(config)
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gtt/config.yaml)")
	cmd.PersistentFlags().String("snapshot", "", "Read the build model from an explicit snapshot file")
	_ = viper.BindPFlag("snapshot", cmd.PersistentFlags().Lookup("snapshot"))
}
