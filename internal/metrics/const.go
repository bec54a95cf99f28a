package metrics

const Namespace = "threadgems"

const (
	CacheTypeRedis  = "redis"
	CacheTypeMemory = "memory"
)

const (
	CacheOperationTypeGet          = "get"
	CacheOperationTypeSet          = "set"
	CacheOperationTypeListAll      = "list_all"
	CacheOperationTypeDelete       = "delete"
	CacheOperationTypeCountEntries = "count_entries"
)

const (
	AuthOutcomeSuccess = "success"
	AuthOutcomeFailure = "failure"
)
