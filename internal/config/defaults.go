package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "/usr/local/var/trialsearch/data/ctg-studies.csv"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/trialsearch/data/db/trials.db"
	}
	if cfg.Model.MaxFeatures == 0 {
		cfg.Model.MaxFeatures = 5000
	}
	if cfg.Model.Workers == 0 {
		cfg.Model.Workers = 8
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 500
	}
	if cfg.Search.MatchCap == 0 {
		cfg.Search.MatchCap = 500
	}
	if cfg.Search.FuzzyThreshold == 0 {
		cfg.Search.FuzzyThreshold = 80
	}
	if cfg.Search.VectorCacheSize == 0 {
		cfg.Search.VectorCacheSize = 1024
	}
}
