package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Host   HostConfig   `mapstructure:"host" validate:"required"`
	Task   TaskConfig   `mapstructure:"task" validate:"required"`
	Detect DetectConfig `mapstructure:"detect" validate:"required"`
}

// ServerConfig contains the webhook-ingress server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// HostConfig describes the host business-management application.
type HostConfig struct {
	// BaseURL is the host application's base URL.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// TaskEndpoint is the task-creation endpoint path on the host.
	TaskEndpoint string `mapstructure:"task_endpoint" validate:"required"`

	// UserID and UserName identify the acting operator session.
	UserID   string `mapstructure:"user_id" validate:"required"`
	UserName string `mapstructure:"user_name"`

	// TimeoutSeconds bounds each call to the task endpoint.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// Timeout returns the task-endpoint timeout as a duration.
func (h HostConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// TaskConfig controls how cleanup tasks are built.
type TaskConfig struct {
	// AssigneeID is the fixed user tasks are assigned to. Required unless
	// AssignToCreator is set.
	AssigneeID string `mapstructure:"assignee_id" validate:"required_without=AssignToCreator"`

	// AssignToCreator assigns tasks to the acting user instead of the
	// fixed assignee.
	AssignToCreator bool `mapstructure:"assign_to_creator"`

	// DueDays is the due-date offset in days.
	DueDays int `mapstructure:"due_days" validate:"gte=0"`

	// TitleTemplate and DescriptionTemplate accept the placeholders
	// {company}, {name}, and {created_by}.
	TitleTemplate       string `mapstructure:"title_template" validate:"required"`
	DescriptionTemplate string `mapstructure:"description_template"`

	// TimeZone is the IANA zone for the local due timestamp. Empty means
	// the system zone.
	TimeZone string `mapstructure:"time_zone"`
}

// Location resolves the configured time zone.
func (t TaskConfig) Location() (*time.Location, error) {
	if t.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(t.TimeZone)
}

// DetectConfig controls the event extractors.
type DetectConfig struct {
	// GenericPattern identifies the shared save endpoint, and the three
	// field names describe its row shape.
	GenericPattern      string `mapstructure:"generic_pattern" validate:"required"`
	GenericIDField      string `mapstructure:"generic_id_field" validate:"required"`
	GenericNameField    string `mapstructure:"generic_name_field" validate:"required"`
	GenericConfirmField string `mapstructure:"generic_confirm_field" validate:"required"`

	// CompanyPattern and ContactPattern identify the kind-specific save
	// endpoints.
	CompanyPattern string `mapstructure:"company_pattern" validate:"required"`
	ContactPattern string `mapstructure:"contact_pattern" validate:"required"`

	// WidgetDelayMillis is the widget-save observation delay.
	WidgetDelayMillis int `mapstructure:"widget_delay_millis" validate:"gte=0"`
}

// WidgetDelay returns the observation delay as a duration.
func (d DetectConfig) WidgetDelay() time.Duration {
	return time.Duration(d.WidgetDelayMillis) * time.Millisecond
}
