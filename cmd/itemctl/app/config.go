package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/records"
)

// Config holds the application configuration loaded from config files,
// ITEMCTL_* environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the file that was read, or the --config value.
	ConfigFile string

	// Paths
	ItemsPath    string
	ReferenceCSV string
	TemplatePath string

	// StrictKeys rejects collections with duplicate keys.
	StrictKeys bool

	Fields             records.Schema
	Columns            corrections.HeaderColumns
	TemplateCategories []corrections.TemplateGroup

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. ITEMCTL_* environment variables
//  3. .env and .env.local
//  4. Config file (.itemctl.yaml in $HOME or the working directory)
//  5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile is LoadConfig with an explicit config file, which must exist.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(constants.ConfigFileName)
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		ItemsPath:    v.GetString("items_path"),
		ReferenceCSV: v.GetString("reference_csv"),
		TemplatePath: v.GetString("template_path"),
		StrictKeys:   v.GetBool("strict_keys"),

		Fields: records.Schema{
			Key:         v.GetString("fields.key"),
			Primary:     v.GetString("fields.primary"),
			Secondary:   v.GetString("fields.secondary"),
			Category:    v.GetString("fields.category"),
			SubCategory: v.GetString("fields.subcategory"),
			BaseName:    v.GetString("fields.base_name"),
		},
		Columns: corrections.HeaderColumns{
			Key:       v.GetString("columns.key"),
			Primary:   v.GetString("columns.primary"),
			Secondary: v.GetString("columns.secondary"),
		},

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := v.UnmarshalKey("template_categories", &config.TemplateCategories); err != nil {
		return nil, errors.NewConfigError("template_categories", err.Error(), err)
	}
	if len(config.TemplateCategories) == 0 {
		config.TemplateCategories = corrections.DefaultTemplateGroups()
	}

	if err := config.Fields.Validate(); err != nil {
		return nil, errors.NewConfigError("fields", err.Error(), err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("items_path", constants.DefaultItemsPath)
	v.SetDefault("reference_csv", constants.DefaultReferenceCSV)
	v.SetDefault("template_path", constants.DefaultTemplatePath)
	v.SetDefault("strict_keys", false)

	schema := records.DefaultSchema()
	v.SetDefault("fields.key", schema.Key)
	v.SetDefault("fields.primary", schema.Primary)
	v.SetDefault("fields.secondary", schema.Secondary)
	v.SetDefault("fields.category", schema.Category)
	v.SetDefault("fields.subcategory", schema.SubCategory)
	v.SetDefault("fields.base_name", schema.BaseName)

	cols := corrections.DefaultHeaderColumns()
	v.SetDefault("columns.key", cols.Key)
	v.SetDefault("columns.primary", cols.Primary)
	v.SetDefault("columns.secondary", cols.Secondary)

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags applies parsed command flags over file and env values.
// Empty strings leave the loaded value in place.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, itemsPath string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if itemsPath != "" {
		c.ItemsPath = itemsPath
	}
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides variables that are already set, so .env.local only fills gaps.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
