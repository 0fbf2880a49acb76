package ubiqgcm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/slices"

	"gitlab.com/ubiqsecurity/ubiq-gcm-go/internal/log"
)

type Configuration struct {
	Cipher struct {
		BlockCipher string `json:"block_cipher" toml:"block_cipher"`
		Multiplier  string `json:"multiplier" toml:"multiplier"`
	} `json:"cipher" toml:"cipher"`

	Logging struct {
		Verbose bool   `json:"verbose" toml:"verbose"`
		Level   string `json:"level" toml:"level"`
		File    string `json:"file" toml:"file"`
	} `json:"logging" toml:"logging"`
}

func (config *Configuration) setDefaults() {
	config.Cipher.BlockCipher = blockCipherAuto
	config.Cipher.Multiplier = multiplierBitSerial

	config.Logging.Verbose = false
	config.Logging.Level = "NOTICE"
	config.Logging.File = ""
}

// validate checks the names in the configuration against the supported
// algorithms and log levels.
func (config *Configuration) validate() error {
	if !slices.Contains(BlockCipherNames(), strings.ToLower(config.Cipher.BlockCipher)) {
		return fmt.Errorf("configuration error - unknown block_cipher %q (want one of %v)",
			config.Cipher.BlockCipher, BlockCipherNames())
	}
	if !slices.Contains(MultiplierNames(), strings.ToLower(config.Cipher.Multiplier)) {
		return fmt.Errorf("configuration error - unknown multiplier %q (want one of %v)",
			config.Cipher.Multiplier, MultiplierNames())
	}
	if _, err := log.LevelFromString(config.Logging.Level); err != nil {
		return fmt.Errorf("configuration error - %w", err)
	}
	return nil
}

// NewConfiguration returns the default configuration, overlaid with the
// contents of a file if one exists. The file is named by the first
// argument, or defaults to ~/.ubiq/gcm-configuration. Files whose names
// end in .toml are parsed as TOML, everything else as JSON. A missing
// file is not an error.
func NewConfiguration(args ...string) (Configuration, error) {
	config := Configuration{}
	config.setDefaults()

	var err error
	var path string

	if len(args) > 0 && len(args[0]) > 0 {
		path = args[0]
	} else {
		var u *user.User
		u, err = user.Current()
		if err != nil {
			return config, nil
		}
		path = filepath.Join(u.HomeDir, ".ubiq", "gcm-configuration")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, err
	}

	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		_, err = toml.Decode(string(content), &config)
	} else {
		err = json.Unmarshal(content, &config)
	}
	if err == nil {
		err = config.validate()
	}

	return config, err
}
