package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level              string                 `json:"level,omitempty" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format             string                 `json:"format,omitempty" mapstructure:"format" validate:"oneof=json console"`
	OutputTarget       string                 `json:"outputTarget,omitempty" mapstructure:"output_target" validate:"oneof=stdout stderr"`
	TimeField          string                 `json:"timeField,omitempty" mapstructure:"time_field"`
	TimeFormat         string                 `json:"timeFormat,omitempty" mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName        string                 `json:"serviceName,omitempty" mapstructure:"service_name"`
	ServiceVersion     string                 `json:"serviceVersion,omitempty" mapstructure:"service_version"`
	Env                string                 `json:"env,omitempty" mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller         bool                   `json:"withCaller,omitempty" mapstructure:"with_caller"`
	Stacktrace         bool                   `json:"stacktrace,omitempty" mapstructure:"stacktrace"`
	StacktraceMinLevel string                 `json:"stacktraceMinLevel,omitempty" mapstructure:"stacktrace_min_level" validate:"oneof=debug info warn error fatal panic"`
	DebugFile          string                 `json:"debugFile,omitempty" mapstructure:"debug_file"`
	Fields             map[string]interface{} `json:"fields,omitempty" mapstructure:"fields"`
}

var timeFormats = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"unix":        zerolog.TimeFormatUnix,
	"unix_ms":     zerolog.TimeFormatUnixMs,
}

// envProfile holds the defaults an environment implies for fields left empty.
type envProfile struct {
	level, format, target string
	caller, stack         bool
}

var envProfiles = map[string]envProfile{
	"dev":     {level: "debug", format: "console", target: "stderr", caller: true},
	"staging": {level: "info", format: "json", target: "stdout", stack: true},
	"prod":    {level: "info", format: "json", target: "stdout", stack: true},
}

// New builds the root logger. cfg is completed with defaults in place, so callers can inspect what was applied.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFormats[cfg.TimeFormat]
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(cfg.writer()).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env)
	if cfg.WithCaller {
		ctx = ctx.Caller()
	}
	if cfg.Stacktrace {
		ctx = ctx.Stack()
	}
	if len(cfg.Fields) > 0 {
		ctx = ctx.Fields(cfg.Fields)
	}
	return ctx.Logger(), nil
}

// writer picks the sink: console or JSON on stdout/stderr, teed to DebugFile for debug sessions in dev.
func (c *LoggerConfig) writer() io.Writer {
	var out io.Writer = os.Stdout
	if c.OutputTarget == "stderr" {
		out = os.Stderr
	}
	if c.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormats[c.TimeFormat]}
	}
	if c.Env != "dev" || c.Level != "debug" || c.DebugFile == "" {
		return out
	}
	file, err := openDebugFile(c.DebugFile)
	if err != nil {
		// no file sink; the primary writer still works
		return out
	}
	return zerolog.MultiLevelWriter(out, file)
}

func openDebugFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	p, ok := envProfiles[c.Env]
	if !ok {
		// unknown env: leave the rest to validation
		return
	}
	c.Level = orDefault(c.Level, p.level)
	c.Format = orDefault(c.Format, p.format)
	c.OutputTarget = orDefault(c.OutputTarget, p.target)
	c.WithCaller = c.WithCaller || p.caller
	c.Stacktrace = c.Stacktrace || p.stack
	c.StacktraceMinLevel = orDefault(c.StacktraceMinLevel, "error")

	c.TimeField = orDefault(c.TimeField, "ts")
	c.TimeFormat = orDefault(c.TimeFormat, "rfc3339nano")
	c.ServiceName = orDefault(c.ServiceName, "football-sim")
	c.ServiceVersion = orDefault(c.ServiceVersion, "0.0.1")
	if c.Fields == nil {
		c.Fields = map[string]interface{}{}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
