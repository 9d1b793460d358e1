// internal/config/database.go
package config

import (
	"fmt"
	"time"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// OperationTimeout is the deadline applied to each gateway call.
func (d *DatabaseConfig) OperationTimeout() time.Duration {
	if d.QueryTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(d.QueryTimeout) * time.Second
}
