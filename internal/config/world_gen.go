package config

import "sync"

// WorldGenSettings holds chunk generation configuration
type WorldGenSettings struct {
	mu        sync.RWMutex
	generator string
	seed      int64
	backend   string
}

var globalWorldGenSettings = &WorldGenSettings{
	generator: "heightmap", // noise terrain, as the default world
	seed:      1,
	backend:   "sparse",
}

// GetGenerator returns the configured generator name
func GetGenerator() string {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.generator
}

// SetGenerator sets the generator name
func SetGenerator(name string) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.generator = name
}

// GetSeed returns the world seed
func GetSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetSeed sets the world seed
func SetSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetBackend returns the storage backend used when comparing layouts
func GetBackend() string {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.backend
}

// SetBackend sets the storage backend name
func SetBackend(name string) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.backend = name
}
