package launcher

// Baseline configuration values, before config files and flags override them.
const (
	DefaultDataDirName = ".bcm"
	DefaultName        = "bcm"
	DefaultNetwork     = "main"
	DefaultFakeNetSize = 3

	DefaultCacheMB = 256
	DefaultHandles = 256

	DefaultVerbosity = 4 // info
	DefaultLogFormat = "text"
)

// DefaultConfig returns a fully populated Config.
func DefaultConfig() Config {
	return Config{
		Node: NodeConfig{
			DataDir: resolvePath("~/" + DefaultDataDirName),
			Name:    DefaultName,
		},
		Logging: LoggingConfig{
			Verbosity: DefaultVerbosity,
			Format:    DefaultLogFormat,
		},
		Game: GameConfig{
			Network: DefaultNetwork,
		},
		Store: StoreConfig{
			CacheMB: DefaultCacheMB,
			Handles: DefaultHandles,
		},
	}
}
