package constants

// viper keys
const (
	ViperServerAddrKey        = "server.addr"
	ViperServerCORSOriginsKey = "server.cors_origins"
	ViperLogLevelKey          = "log.level"
	ViperLogDevelopmentKey    = "log.development"
	ViperGrantRateKey         = "grant.rate_per_point"
	ViperFuzzyFloorKey        = "fuzzy.floor"
	ViperFetchRetriesKey      = "ingest.fetch_retries"
	ViperFetchTimeoutKey      = "ingest.fetch_timeout"
	ViperSourcesKey           = "sources"
	ViperMunicipalitiesKey    = "municipalities"
	ViperEnvPrefix            = "YHDASH"
)
