package bdtoolkit

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _bdconfig{}
)

// _bdconfig is a "hidden" struct, just use `bdConfig`
type _bdconfig struct {
	outputDir string
	modelDir  string
}

// bdConfig returns the toolkit configuration. The configuration file is a
// conf.toml living in the directory pointed to by the BDTK_CONFIG
// environment variable; with the variable unset everything resolves to the
// working directory.
func bdConfig() _bdconfig {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("BDTK_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		config = _bdconfig{outputDir: ".", modelDir: "."}
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}
	outputDir := viper.GetString("general.output_path")
	if outputDir == "" {
		outputDir = "."
	}
	modelDir := viper.GetString("general.model_path")
	if modelDir == "" {
		modelDir = "."
	}
	cfgLoaded = true
	config = _bdconfig{outputDir: outputDir, modelDir: modelDir}
	return config
}
