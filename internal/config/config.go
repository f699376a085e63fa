// Package config provides configuration structures and loading for personpad.
package config

// Config represents the complete application configuration.
type Config struct {
	Data       DataConfig       `yaml:"data" mapstructure:"data"`
	Source     DatabaseConfig   `yaml:"source" mapstructure:"source"`
	Completion CompletionConfig `yaml:"completion" mapstructure:"completion"`
	Runner     RunnerConfig     `yaml:"runner" mapstructure:"runner"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// DataConfig selects where person records are loaded from.
type DataConfig struct {
	Source string `yaml:"source" mapstructure:"source"` // file or mysql
	File   string `yaml:"file" mapstructure:"file"`     // path to a JSON fixture, "-" for stdin
	Table  string `yaml:"table" mapstructure:"table"`   // mysql: table holding the documents
	Column string `yaml:"column" mapstructure:"column"` // mysql: JSON column
	Key    string `yaml:"key" mapstructure:"key"`       // mysql: ordering column
	Where  string `yaml:"where" mapstructure:"where"`   // mysql: optional filter
	Limit  int    `yaml:"limit" mapstructure:"limit"`   // mysql: 0 means no limit
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// CompletionConfig controls property path enumeration for suggestions.
type CompletionConfig struct {
	Binding        string `yaml:"binding" mapstructure:"binding"`
	MaxDepth       int    `yaml:"max_depth" mapstructure:"max_depth"` // 0 means unbounded
	MaxSuggestions int    `yaml:"max_suggestions" mapstructure:"max_suggestions"`
}

// RunnerConfig controls script execution.
type RunnerConfig struct {
	ScriptName   string `yaml:"script_name" mapstructure:"script_name"`
	EchoConsole  bool   `yaml:"echo_console" mapstructure:"echo_console"`
	MaxCallStack int    `yaml:"max_call_stack" mapstructure:"max_call_stack"`
}

// OutputConfig controls console rendering.
type OutputConfig struct {
	Color  bool `yaml:"color" mapstructure:"color"`
	Indent int  `yaml:"indent" mapstructure:"indent"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Source: "file",
			File:   "persons.json",
			Column: "document",
			Key:    "id",
		},
		Source: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     4,
			MaxIdleConnections: 2,
		},
		Completion: CompletionConfig{
			Binding:        "Person",
			MaxDepth:       8,
			MaxSuggestions: 50,
		},
		Runner: RunnerConfig{
			ScriptName:   "person.js",
			EchoConsole:  false,
			MaxCallStack: 4096,
		},
		Output: OutputConfig{
			Color:  true,
			Indent: 2,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// IndentString returns the JSON indentation unit for the raw view.
func (o OutputConfig) IndentString() string {
	if o.Indent <= 0 {
		return ""
	}
	b := make([]byte, o.Indent)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
