package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todos/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "TODOS"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyKey      = "key"
	cfgKeyValidate = "validate"

	defaultBackend = types.BackendFile
)

// loadConfig reads config.yaml from configDir. A missing config.yaml is not
// an error. TODOS_BACKEND, TODOS_KEY and TODOS_VALIDATE override the file;
// data_dir is resolved separately so TODOS_DATA_DIR ranks below the file.
func loadConfig(configDir string) (types.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyKey, types.DefaultKey)
	v.SetDefault(cfgKeyValidate, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyKey, cfgKeyValidate} {
		if err := v.BindEnv(key); err != nil {
			return types.Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: v.GetString(cfgKeyDataDir),
		Key:     v.GetString(cfgKeyKey),
		Strict:  v.GetBool(cfgKeyValidate),
	}, nil
}
