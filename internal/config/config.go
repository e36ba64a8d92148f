// Package config reads server configuration from the environment.
package config

import (
	"os"
	"path/filepath"
)

const (
	defaultAddr    = ":8080"
	defaultDataDir = "./data"
	defaultDBName  = "minesweep.db"
	defaultLogName = "minesweep.log"
)

func Addr() string {
	if addr, ok := os.LookupEnv("MINESWEEP_ADDR"); ok {
		return addr
	}
	return defaultAddr
}

// DataDir is where the store database and log files live.
func DataDir() string {
	if dir, ok := os.LookupEnv("MINESWEEP_DATA_DIR"); ok {
		return dir
	}
	return defaultDataDir
}

func StorePath() string {
	if path, ok := os.LookupEnv("MINESWEEP_DB"); ok {
		return path
	}
	return filepath.Join(DataDir(), defaultDBName)
}

func LogPath() string {
	if path, ok := os.LookupEnv("MINESWEEP_LOG"); ok {
		return path
	}
	return filepath.Join(DataDir(), defaultLogName)
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
