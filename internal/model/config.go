package model

// DefaultInput is the sentence used when none is given on the command line
const DefaultInput = "Aspirin reduces inflammation by inhibiting COX-2 enzyme."

// Config holds all relcheck configuration
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Knowledge KnowledgeConfig `yaml:"knowledge" mapstructure:"knowledge"`
	Prompt    PromptConfig    `yaml:"prompt" mapstructure:"prompt"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// LLMConfig configures the text generator and its fixed decoding parameters
type LLMConfig struct {
	// Provider is one of ollama, openai, anthropic, replay
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`

	// APIKey for OpenAI/Anthropic (prefer OPENAI_API_KEY / ANTHROPIC_API_KEY)
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout in seconds for a single generation call
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// Fixed decoding parameters
	MaxTokens   int      `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32  `yaml:"temperature" mapstructure:"temperature"`
	Stop        []string `yaml:"stop" mapstructure:"stop"`

	// ResponseFile is read by the replay provider
	ResponseFile string `yaml:"response_file,omitempty" mapstructure:"response_file"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// KnowledgeConfig points at the reference knowledge table
type KnowledgeConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`   // .csv, .tsv, .db, .sqlite, .sqlite3
	Table string `yaml:"table" mapstructure:"table"` // SQLite table name
}

// PromptConfig allows replacing the built-in prompt template
type PromptConfig struct {
	TemplateFile string `yaml:"template_file,omitempty" mapstructure:"template_file"`
}

// OutputConfig controls where the run record goes
type OutputConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3.1:8b",
			Timeout:     60,
			MaxTokens:   256,
			Temperature: 0.3,
			Stop:        []string{"</s>"},
		},
		Knowledge: KnowledgeConfig{
			Path:  "data/biokg.csv",
			Table: "knowledge",
		},
		Output: OutputConfig{
			Path: "results/demo_output.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
