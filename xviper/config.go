package xviper

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// AddStandardConfigPaths adds the standard *nix-style configuration paths
func AddStandardConfigPaths(c Configer, applicationName string) {
	c.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	c.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	c.AddConfigPath(".")
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// BindConfigName extracts the name of the Viper configuration file from a flagset.  If the given flag
// is set, its value is passed to c.SetConfigName and this function returns true.  If the flag was missing,
// this method returns false and the supplied Configer is not changed.
func BindConfigName(c Configer, fl FlagLookup, flag string) bool {
	if f := fl.Lookup(flag); f != nil {
		configName := f.Value.String()
		if len(configName) > 0 {
			c.SetConfigName(configName)
			return true
		}
	}

	return false
}

// BindConfigFile extracts the path of the Viper configuration file from a flagset.  If the given flag
// is set, its value is passed to c.SetConfigFile and this function returns true.  If the flag was missing,
// this method returns false and the supplied Configer is not changed.
func BindConfigFile(c Configer, fl FlagLookup, flag string) bool {
	if f := fl.Lookup(flag); f != nil {
		configFile := f.Value.String()
		if len(configFile) > 0 {
			c.SetConfigFile(configFile)
			return true
		}
	}

	return false
}

// BindConfig attempts first to bind the configuration file via BindConfigFile.  Failing that, it
// attempts to bind the configuration name via BindConfigName.  The returned flag is true only when an
// explicit file was bound, which means the file is required to exist.
func BindConfig(c Configer, fl FlagLookup, fileFlag, nameFlag string) (required bool) {
	if BindConfigFile(c, fl, fileFlag) {
		return true
	}

	BindConfigName(c, fl, nameFlag)
	return false
}

// Reader is the subset of Viper behavior that loads the configuration file
type Reader interface {
	ReadInConfig() error
}

// ReadConfig loads configuration through the given Reader.  When required is false, a configuration
// file that cannot be found is not an error and the remaining sources (defaults, environment, flags)
// are used on their own.
func ReadConfig(r Reader, required bool) error {
	err := r.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if !required && errors.As(err, &notFound) {
		return nil
	}

	return err
}
