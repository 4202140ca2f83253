package cfg

type Cfg struct {
	// GitHub access
	Token       string
	APIEndpoint string

	// Application configuration
	DBPath            string
	WatchConfigPath   string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string
	Once              bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
