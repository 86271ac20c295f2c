package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func LoadConfig(cfgFile string) (*ClusterConfig, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("taskgridd")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/taskgridd/")
	}

	viper.SetEnvPrefix("TASKGRIDD") // env vars like TASKGRIDD_NODE__ID
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))

	viper.BindEnv("node.id")
	viper.BindEnv("etcd.endpoints")
	viper.BindEnv("etcd.username")
	viper.BindEnv("etcd.password")
	viper.BindEnv("etcd.prefix")
	viper.BindEnv("api.listen_addr")
	viper.BindEnv("api.auth_tokens")
	viper.BindEnv("taskmanager.address")
	viper.BindEnv("taskmanager.data_port")
	viper.BindEnv("taskmanager.slots")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg ClusterConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}
