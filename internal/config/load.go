package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables (prefix CLEANUP_, dots replaced with
// underscores, e.g. CLEANUP_HOST_BASE_URL) take precedence over file
// values. Returns a populated Config or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the
		// environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("CLEANUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := cfg.Task.Location(); err != nil {
		return nil, fmt.Errorf("invalid task time zone %q: %w", cfg.Task.TimeZone, err)
	}

	return &cfg, nil
}

// setDefaults registers the defaults matching the host's stock modules.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8390)
	v.SetDefault("server.log_level", "info")

	// Empty defaults register the keys so AutomaticEnv can fill them in
	// during Unmarshal.
	v.SetDefault("host.base_url", "")
	v.SetDefault("host.task_endpoint", "/php_functions/todo_save.php")
	v.SetDefault("host.user_id", "")
	v.SetDefault("host.user_name", "")
	v.SetDefault("host.timeout_seconds", 10)

	v.SetDefault("task.assignee_id", "")
	v.SetDefault("task.assign_to_creator", false)
	v.SetDefault("task.time_zone", "")
	v.SetDefault("task.due_days", 2)
	v.SetDefault("task.title_template", "🧹 Data Cleanup: {company}")
	v.SetDefault("task.description_template",
		"Review and complete details for {company}:\n\n"+
			"• Address\n• Phone number\n• Email\n• Payment terms\n• VAT number\n• Notes")

	v.SetDefault("detect.generic_pattern", "save.php")
	v.SetDefault("detect.generic_id_field", "ID")
	v.SetDefault("detect.generic_name_field", "COMPANY")
	v.SetDefault("detect.generic_confirm_field", "cID")
	v.SetDefault("detect.company_pattern", "company_save.php")
	v.SetDefault("detect.contact_pattern", "contact_save.php")
	v.SetDefault("detect.widget_delay_millis", 1500)
}
