package config

const (
	defaultDataDir            = "~/persona/data"
	defaultOutputDir          = "~/persona/images"
	defaultLogDir             = "~/.local/share/persona/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLLMBaseURL         = "https://openrouter.ai/api/v1"
	defaultLLMModel           = "openai/gpt-4o"
	defaultLLMTemperature     = 0.7
	defaultLLMMaxTokens       = 1000
	defaultLLMTimeoutSeconds  = 60
	defaultRenderBaseURL      = "http://127.0.0.1:7860"
	defaultRenderSteps        = 30
	defaultRenderSampler      = "DPM++ 2M Karras"
	defaultRenderCFGScale     = 7.0
	defaultRenderWidth        = 1024
	defaultRenderHeight       = 1024
	defaultRenderSeed         = -1
	defaultRenderBatchSize    = 1
	defaultRenderTimeout      = 300
	defaultPromptDelaySeconds = 1
	defaultImageDelaySeconds  = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Temperature:    defaultLLMTemperature,
			MaxTokens:      defaultLLMMaxTokens,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Render: Render{
			BaseURL:        defaultRenderBaseURL,
			Steps:          defaultRenderSteps,
			SamplerName:    defaultRenderSampler,
			CFGScale:       defaultRenderCFGScale,
			Width:          defaultRenderWidth,
			Height:         defaultRenderHeight,
			Seed:           defaultRenderSeed,
			RestoreFaces:   true,
			BatchSize:      defaultRenderBatchSize,
			TimeoutSeconds: defaultRenderTimeout,
		},
		Pipeline: Pipeline{
			PromptDelaySeconds: defaultPromptDelaySeconds,
			ImageDelaySeconds:  defaultImageDelaySeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
