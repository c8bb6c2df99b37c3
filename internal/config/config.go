// Package config loads the flowline configuration from flowline.yaml or
// flowline.toml, FLOWLINE_* environment variables and command flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/viant/flowline"
)

// EnvPrefix prefixes environment overrides, e.g. FLOWLINE_TRANSFORM_MODE.
const EnvPrefix = "FLOWLINE"

// New returns a viper instance with every key defaulted. An empty configFile
// searches flowline.{yaml,toml} in the working directory and $HOME/.flowline.
func New(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("flowline")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.flowline")
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults(flowline.DefaultConfig()) {
		v.SetDefault(key, value)
	}
	return v
}

// Load reads the config file if one exists and returns the validated config.
func Load(v *viper.Viper) (*flowline.Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	ret := &flowline.Config{}
	if err := v.Unmarshal(ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Keys lists every configuration key in sorted order.
func Keys() []string {
	var ret []string
	for key := range defaults(flowline.DefaultConfig()) {
		ret = append(ret, key)
	}
	sort.Strings(ret)
	return ret
}

// Marshal encodes config as "toml", "yaml" or "json".
func Marshal(config *flowline.Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml":
		return toml.Marshal(config)
	case "yaml", "yml":
		return yaml.Marshal(config)
	case "json":
		return json.MarshalIndent(config, "", "  ")
	}
	return nil, fmt.Errorf("unsupported config format: %q", format)
}

// defaults flattens config into dotted viper keys.
func defaults(config *flowline.Config) map[string]interface{} {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil
	}
	ret := map[string]interface{}{
		"traversal.anchor":       config.Traversal.Anchor,
		"tracing.serviceVersion": config.Tracing.ServiceVersion,
		"tracing.outputFile":     config.Tracing.OutputFile,
	}
	flatten("", tree, ret)
	return ret
}

func flatten(prefix string, tree map[string]interface{}, dest map[string]interface{}) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flatten(key, nested, dest)
			continue
		}
		dest[key] = value
	}
}
