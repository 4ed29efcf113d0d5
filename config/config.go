package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable configurations.
const EnvPrefix = "CATALOG"

// FileTypes is an array of types of the config file.
var FileTypes = [...]string{"yml", "yaml"}

// FileName is the name of the config file.
const FileName = "catalog"

// BindFlagSet glues cobra and viper together via FlagSets
func BindFlagSet(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their equivalent
		// keys with underscores
		// e.g. prefix=CATALOG and --metadata-dir is set to CATALOG_METADATA_DIR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			viper.BindEnv(f.Name, fmt.Sprintf("%s_%s", EnvPrefix, envVarSuffix))
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			_ = flags.Set(f.Name, fmt.Sprintf("%v", val))
		}
	})
}

// FindConfigFile looks for the auto-load configuration file in the given
// directory. The empty string is returned when no file is present; more than
// one matching file type is an error.
func FindConfigFile(dir string) (string, error) {
	count := 0
	fullPath := ""
	for _, fileType := range FileTypes {
		candidate := filepath.Join(dir, FileName+"."+fileType)
		if _, err := os.Stat(candidate); err == nil {
			count++
			fullPath = candidate
		}
	}
	if count > 1 {
		return "", fmt.Errorf("multiple %s configuration files in %s", FileName, dir)
	}
	return fullPath, nil
}
