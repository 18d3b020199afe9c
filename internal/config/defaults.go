package config

const (
	defaultWatchDir               = "/tmp/audio_to_process"
	defaultTranscriptDir          = "/tmp/transcripts"
	defaultLogDir                 = "~/.local/share/murmur/logs"
	defaultDeepgramBaseURL        = "https://api.deepgram.com"
	defaultDeepgramModel          = "nova-3"
	defaultDeepgramRequestTimeout = 120
	defaultSettleDelaySeconds     = 1
	defaultNotifyRequestTimeout   = 10
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

func defaultAllowedExtensions() []string {
	return []string{".mp3", ".wav", ".flac", ".m4a", ".webm"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir:      defaultWatchDir,
			TranscriptDir: defaultTranscriptDir,
			LogDir:        defaultLogDir,
		},
		Deepgram: Deepgram{
			BaseURL:        defaultDeepgramBaseURL,
			Model:          defaultDeepgramModel,
			SmartFormat:    true,
			Diarize:        true,
			RequestTimeout: defaultDeepgramRequestTimeout,
		},
		Monitor: Monitor{
			SettleDelaySeconds: defaultSettleDelaySeconds,
			AllowedExtensions:  defaultAllowedExtensions(),
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Successes:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
