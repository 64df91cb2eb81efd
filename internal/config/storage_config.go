package config

type Storage struct{}

var _ StorageConfig = Storage{}

// GetRedisAddr returns the Redis address used for login flow state.
// An empty address keeps the state in memory.
func (Storage) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

func (Storage) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}
