package lookupdest

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var configRegex = regexp.MustCompile("\\s*([\\w.]+)=\\s*(.+)\\s*;\\s*")

var defaultConfigFile = "/.i2cp.conf"

// Lookup configuration property names
const (
	PROP_LOOKUP_TIMEOUT    = "i2cp.lookup.timeout"
	PROP_LOOKUP_WORKERS    = "i2cp.lookup.workers"
	PROP_LOOKUP_QUEUE_SIZE = "i2cp.lookup.queueSize"
	PROP_LOOKUP_SECRET     = "i2cp.lookup.secret"
)

const (
	DEFAULT_LOOKUP_WORKERS    = 4
	DEFAULT_LOOKUP_QUEUE_SIZE = 256
)

var defaultProperties = map[string]string{
	PROP_LOOKUP_TIMEOUT:    "15000", // milliseconds
	PROP_LOOKUP_WORKERS:    "4",
	PROP_LOOKUP_QUEUE_SIZE: "256",
	PROP_LOOKUP_SECRET:     "", // lookup password for secret-required blinded addresses
}

// Config holds the lookup handler's properties.
type Config struct {
	properties map[string]string
}

// NewConfig returns a configuration holding the defaults.
func NewConfig() *Config {
	c := &Config{properties: make(map[string]string, len(defaultProperties))}
	for k, v := range defaultProperties {
		c.properties[k] = v
	}
	return c
}

// LoadConfig returns the defaults overlaid with the config file. The file
// is $I2CP_HOME$GO_I2CP_CONF, falling back to /.i2cp.conf; a missing file
// is not an error.
func LoadConfig() *Config {
	c := NewConfig()
	conf := os.Getenv("GO_I2CP_CONF")
	if len(conf) == 0 {
		conf = defaultConfigFile
	}
	path := os.Getenv("I2CP_HOME") + conf
	log.Debugf("Loading config file %s", path)
	ParseConfig(path, c.SetProperty)
	return c
}

// LoadConfigFile returns the defaults overlaid with the given file.
func LoadConfigFile(path string) *Config {
	c := NewConfig()
	ParseConfig(path, c.SetProperty)
	return c
}

// SetProperty sets a property. Unknown names are kept so applications can
// carry their own settings.
func (c *Config) SetProperty(name, value string) {
	c.properties[name] = strings.TrimSpace(value)
}

// Property returns a property value, or "" if unset.
func (c *Config) Property(name string) string {
	return c.properties[name]
}

// LookupTimeout is the network database timeout used when a request does not give one.
func (c *Config) LookupTimeout() time.Duration {
	ms := parseIntWithDefault(c.properties[PROP_LOOKUP_TIMEOUT], int(DEFAULT_LOOKUP_TIMEOUT/time.Millisecond))
	if ms <= 0 {
		return DEFAULT_LOOKUP_TIMEOUT
	}
	return time.Duration(ms) * time.Millisecond
}

// Workers is the number of job queue workers.
func (c *Config) Workers() int {
	n := parseIntWithDefault(c.properties[PROP_LOOKUP_WORKERS], DEFAULT_LOOKUP_WORKERS)
	if n <= 0 {
		return DEFAULT_LOOKUP_WORKERS
	}
	return n
}

// QueueSize is the job queue capacity.
func (c *Config) QueueSize() int {
	n := parseIntWithDefault(c.properties[PROP_LOOKUP_QUEUE_SIZE], DEFAULT_LOOKUP_QUEUE_SIZE)
	if n <= 0 {
		return DEFAULT_LOOKUP_QUEUE_SIZE
	}
	return n
}

// LookupSecret is the lookup password for secret-required blinded addresses.
func (c *Config) LookupSecret() string {
	return c.properties[PROP_LOOKUP_SECRET]
}

// BlindingDecoder builds the decoder configured with the lookup secret.
func (c *Config) BlindingDecoder() *Ed25519BlindingDecoder {
	if secret := c.LookupSecret(); secret != "" {
		return NewBlindingDecoder(WithLookupSecret(secret))
	}
	return NewBlindingDecoder()
}

// ParseConfig parses a configuration file and calls the callback for each key-value pair.
// Lines have the form "name=value;".
func ParseConfig(s string, cb func(string, string)) {
	file, err := os.Open(s)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("%s", err.Error())
		}
		return
	}
	defer file.Close()
	log.Debugf("Parsing config file '%s'", s)
	scan := bufio.NewScanner(file)
	for scan.Scan() {
		groups := configRegex.FindStringSubmatch(scan.Text())
		if len(groups) != 3 {
			continue
		}
		cb(groups[1], groups[2])
	}
	if err := scan.Err(); err != nil {
		log.Errorf("reading input from %s config %s", s, err.Error())
	}
}

// parseIntWithDefault parses an integer string with a default value if parsing fails
func parseIntWithDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return n
}
