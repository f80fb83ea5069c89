package config

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Storage       string `yaml:"storage" validate:"required,oneof=mongo pg memory"`
	MongoDatabase string `yaml:"mongo_database" validate:"required_if=Storage mongo"`

	ThreadsPerBoard   int    `yaml:"threads_per_board" validate:"required,gt=0"`
	RepliesPerPreview int    `yaml:"replies_per_preview" validate:"required,gt=0"`
	DeletedReplyText  string `yaml:"deleted_reply_text" validate:"required"`
	MaxTextLength     int    `yaml:"max_text_length" validate:"required,gt=0"`
	PasswordScheme    string `yaml:"password_scheme" validate:"required,oneof=plain bcrypt"`

	HttpAddr           string   `yaml:"http_addr" validate:"required"`
	CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`
	// posts per second allowed for one client ip, 0 disables limiting
	CreateRatePerSecond float64 `yaml:"create_rate_per_second" validate:"gte=0"`
	// served behind tls, enables Strict-Transport-Security
	HTTPS               bool    `yaml:"https"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	MongoURI string `yaml:"mongo_uri"`
	Pg       *Pg    `yaml:"pg"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

// Validate checks field constraints and the storage specific private settings.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return err
	}
	if err := validate.Struct(c.Private); err != nil {
		return err
	}
	switch c.Public.Storage {
	case "mongo":
		if c.Private.MongoURI == "" {
			return &MissingError{Field: "mongo_uri"}
		}
	case "pg":
		if c.Private.Pg == nil {
			return &MissingError{Field: "pg"}
		}
	}
	return nil
}

type MissingError struct {
	Field string
}

func (e *MissingError) Error() string {
	return "missing private setting " + e.Field
}
