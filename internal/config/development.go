package config

import (
	"os"
	"strings"
)

// Development reports whether DEVELOPMENT is set to anything but "0" or
// "false". It forces debug logging in [Load].
func Development() bool {
	v, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	v = strings.TrimSpace(v)
	return v != "0" && !strings.EqualFold(v, "false")
}
