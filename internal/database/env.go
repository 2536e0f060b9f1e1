package database

import (
	"os"
	"strconv"
)

func envLookup(key string) string {
	return os.Getenv(key)
}

func parsePort(s string) (int, error) {
	return strconv.Atoi(s)
}
