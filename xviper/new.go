package xviper

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultNameFlag = "name"
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a Viper instance
type Option func(*viper.Viper) error

// AddConfigPaths adds each path to the set of locations searched for the configuration file
func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

// SetEnvPrefix sets the environment prefix.  Nested keys map onto environment variables by replacing
// dots with underscores, e.g. log.level becomes PREFIX_LOG_LEVEL.
func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		return nil
	}
}

func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

func AutomaticEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	return nil
}

// BindEnv binds a key to an exact environment variable name, which is not subject to the env prefix
func BindEnv(key, env string) Option {
	return func(v *viper.Viper) error {
		return v.BindEnv(key, env)
	}
}

// BindPFlag binds a single flag to a key whose name differs from the flag's, e.g. a nested key
func BindPFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlag(key, flag)
	}
}

// ApplyDefaults sets each default value
func ApplyDefaults(d Defaults) Option {
	return func(v *viper.Viper) error {
		for key, value := range d {
			v.SetDefault(key, value)
		}

		return nil
	}
}

// StdOptions applies the standard conventions for the given application name: the standard config
// paths, a config name equal to the application name, and automatic environment overrides with the
// application name as prefix.
func StdOptions(applicationName string) Option {
	return func(v *viper.Viper) error {
		AddStandardConfigPaths(v, applicationName)

		err := SetEnvPrefix(applicationName)(v)
		if err == nil {
			err = AutomaticEnv(v)
		}

		if err == nil {
			err = SetConfigName(applicationName)(v)
		}

		return err
	}
}

// New creates a Viper instance and applies each option in order
func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

// Configure applies each option in order, stopping at the first error
func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}
