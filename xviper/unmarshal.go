package xviper

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Defaults is a map of configuration keys onto their default values
type Defaults map[string]interface{}

// DecodeHook returns the decoding option used for all unmarshaling.  Strings decode into
// time.Duration values, comma-separated slices, and any encoding.TextUnmarshaler.
func DecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	)
}

type unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// Unmarshal decodes all settings into each of the given values using DecodeHook
func Unmarshal(u unmarshaler, v ...interface{}) error {
	var err error
	for i := 0; err == nil && i < len(v); i++ {
		err = u.Unmarshal(v[i], DecodeHook())
	}

	return err
}
