package config

import (
	"strconv"
	"time"
)

type SecurityConfig interface {
	GetMaxSessionAge() time.Duration
	GetBcryptCost() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetMaxSessionAge() time.Duration {
	if v := GetEnv("MAX_SESSION_AGE", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return 12 * time.Hour // Sessions expire after 12 hours
}

// GetBcryptCost returns the bcrypt work factor. Zero means "library
// default"; the hasher treats anything below the minimum cost that way.
func (Security) GetBcryptCost() int {
	if v := GetEnv("BCRYPT_COST", ""); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			return cost
		}
	}
	return 0
}
