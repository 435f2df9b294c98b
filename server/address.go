package server

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/viper"
)

// PortKey is the viper key bound to PortEnvironmentVariable
const PortKey = "port"

// ListenAddress is the host and port a launcher binds.
type ListenAddress struct {
	Host string
	Port string
}

// String returns the host:port form suitable for net.Listen
func (la ListenAddress) String() string {
	return net.JoinHostPort(la.Host, la.Port)
}

// BaseURI returns the http URI clients use to reach this address
func (la ListenAddress) BaseURI() string {
	return fmt.Sprintf(baseURIFormat, la.Host, la.Port)
}

// DeriveListenAddress produces the address for the given mode.  Local mode always yields LocalHost and
// LocalPort, regardless of the environment.  Production mode yields ProductionHost and the port bound to
// PortKey, which NewViper binds to the PORT environment variable.  The port must be a decimal integer in
// [0, 65535] and is returned exactly as supplied; a missing or malformed port is a *ConfigurationError.
func DeriveListenAddress(mode Mode, v *viper.Viper) (ListenAddress, error) {
	if mode == Local {
		return ListenAddress{Host: LocalHost, Port: LocalPort}, nil
	}

	var port string
	if v != nil {
		port = v.GetString(PortKey)
	}

	if len(port) == 0 {
		return ListenAddress{}, &ConfigurationError{
			Key:    PortEnvironmentVariable,
			Reason: "a port is required in production mode",
		}
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return ListenAddress{}, &ConfigurationError{
			Key:    PortEnvironmentVariable,
			Value:  port,
			Reason: "the port must be a decimal integer between 0 and 65535",
			Err:    err,
		}
	}

	return ListenAddress{Host: ProductionHost, Port: port}, nil
}
