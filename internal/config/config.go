package config

import (
	"runtime"
	"sync"
)

// StreamSettings holds chunk streaming and meshing configuration
type StreamSettings struct {
	mu         sync.RWMutex
	loadRadius int // in chunks
	workers    int
	meshLOD    int8
}

var globalStreamSettings = &StreamSettings{
	loadRadius: 2,
	workers:    runtime.NumCPU(),
	meshLOD:    0,
}

// GetLoadRadius returns the chunk load radius
func GetLoadRadius() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.loadRadius
}

// SetLoadRadius sets the chunk load radius
func SetLoadRadius(radius int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()

	// Clamp to reasonable values
	if radius < 0 {
		radius = 0
	}
	if radius > 32 {
		radius = 32
	}

	globalStreamSettings.loadRadius = radius
}

// GetEvictRadius returns radius for chunk eviction (larger than load radius)
func GetEvictRadius() int {
	return GetLoadRadius()*2 + 1
}

// GetWorkers returns the number of generation and meshing workers
func GetWorkers() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.workers
}

// SetWorkers sets the worker count, at least one
func SetWorkers(n int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	globalStreamSettings.workers = max(n, 1)
}

// GetMeshLOD returns the coarsest detail level the mesher will merge down to
func GetMeshLOD() int8 {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.meshLOD
}

// SetMeshLOD sets the mesher's detail floor, clamped to [0, 6]
func SetMeshLOD(lod int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	globalStreamSettings.meshLOD = int8(min(max(lod, 0), 6))
}

// Settings is a point-in-time copy of every setting.
type Settings struct {
	Generator  string
	Seed       int64
	Backend    string
	LoadRadius int
	Workers    int
	MeshLOD    int8
}

// Snapshot copies the current settings.
func Snapshot() Settings {
	return Settings{
		Generator:  GetGenerator(),
		Seed:       GetSeed(),
		Backend:    GetBackend(),
		LoadRadius: GetLoadRadius(),
		Workers:    GetWorkers(),
		MeshLOD:    GetMeshLOD(),
	}
}
