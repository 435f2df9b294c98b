package server

import (
	"io"

	"github.com/example/quickstart/xviper"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FileFlag           = xviper.DefaultFileFlag
	NameFlag           = xviper.DefaultNameFlag
	LogLevelFlag       = "log-level"
	MetricsAddressFlag = "metrics-address"
)

// NewFlagSet creates the command line flags understood by Main.  Parse errors and usage are
// written to output.  Unknown flags are ignored, since the first argument selects the mode and may
// take any form.
func NewFlagSet(applicationName string, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}

	fs.StringP(FileFlag, "f", "", "the fully qualified configuration file to use.  Overrides --name.")
	fs.StringP(NameFlag, "n", applicationName, "the name of the configuration file to search for")
	fs.String(LogLevelFlag, "", "the log level: ALL, DEBUG, INFO, WARN, or ERROR")
	fs.String(MetricsAddressFlag, "", "the address of the metrics listener.  If unset, metrics are not served.")
	return fs
}

// NewViper produces a Viper instance configured with the standard conventions.
// The applicationName is used as the configuration file name, the environment prefix,
// and to generate the path under /etc and $HOME to look for configuration files.
// Automatic environment mode is turned on, and PortKey is bound to the unprefixed PORT variable.
func NewViper(applicationName string) *viper.Viper {
	v, _ := xviper.New(
		xviper.StdOptions(applicationName),
		xviper.BindEnv(PortKey, PortEnvironmentVariable),
	)

	SetDefaults(v)
	return v
}

// ParseAndBind parses the given flag set using the supplied arguments and then binds
// the flag set to the specified Viper instance.  The arguments must not include the program name.
func ParseAndBind(v *viper.Viper, flagSet *pflag.FlagSet, arguments []string) error {
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	_, err := xviper.Configure(
		v,
		xviper.BindPFlag(LogLevelKey, flagSet.Lookup(LogLevelFlag)),
		xviper.BindPFlag(MetricsAddressKey, flagSet.Lookup(MetricsAddressFlag)),
	)

	return err
}

// ReadConfig binds the --file and --name flags and loads the configuration file.  A file named
// with --file must exist.  When only a name is in effect, a missing file is ignored.
func ReadConfig(v *viper.Viper, flagSet *pflag.FlagSet) error {
	required := xviper.BindConfig(v, flagSet, FileFlag, NameFlag)
	if err := xviper.ReadConfig(v, required); err != nil {
		return &ConfigurationError{
			Key:    FileFlag,
			Value:  v.ConfigFileUsed(),
			Reason: err.Error(),
			Err:    err,
		}
	}

	return nil
}
