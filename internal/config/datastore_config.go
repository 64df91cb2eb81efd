package config

type DataStore struct{}

var _ DataStoreConfig = DataStore{}

func (DataStore) GetDataStoreURL() string {
	return GetEnv("SUPABASE_URL", "http://localhost:54321")
}

// GetDataStoreKey returns the public project key sent as the apikey header.
func (DataStore) GetDataStoreKey() string {
	return GetEnv("SUPABASE_KEY", "")
}

func (DataStore) GetProfileTable() string {
	return GetEnv("PROFILE_TABLE", "users")
}
