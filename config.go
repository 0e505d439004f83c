package liaison

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the file-backed counterpart of Credentials plus the few
// knobs the manager takes.
type Config struct {
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	Nick     string `yaml:"nick"`
	Real     string `yaml:"real"`
	Password string `yaml:"password"`

	NoTLS     bool `yaml:"no-tls"`
	TimeoutMS int  `yaml:"timeout-ms"`
}

func ParseConfig(buf []byte) (cfg Config, err error) {
	err = yaml.Unmarshal(buf, &cfg)
	return
}

func LoadConfigFile(filename string) (cfg Config, err error) {
	var buf []byte

	buf, err = os.ReadFile(filename)
	if err != nil {
		return
	}

	cfg, err = ParseConfig(buf)

	return
}

// Credentials extracts the connection credentials from the config.
func (cfg Config) Credentials() Credentials {
	realName := cfg.Real
	if realName == "" {
		realName = cfg.Nick
	}
	return Credentials{
		RealName: realName,
		Nickname: cfg.Nick,
		Password: cfg.Password,
		Server:   cfg.Server,
		Port:     cfg.Port,
	}
}

// Timeout returns the configured connection timeout, or zero when the
// manager should use its default.
func (cfg Config) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutMS) * time.Millisecond
}
