// Package envvar provides typed accessors for the environment variables which drive the fixture programs used when
// testing command line tools.
package envvar

import (
	"os"
	"strconv"
	"time"
)

// GetInt returns the int value of the environment variable with the given name, returns 0, false when the variable is
// unset or isn't an int.
func GetInt(name string) (int, bool) {
	env, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}

	val, err := strconv.Atoi(env)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetBool returns the boolean value of the environment variable with the given name, returns false, false when the
// variable is unset or isn't a boolean.
func GetBool(name string) (bool, bool) {
	env, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}

	val, err := strconv.ParseBool(env)
	if err != nil {
		return false, false
	}

	return val, true
}

// GetDuration returns the time.Duration value of the environment variable with the given name, returns 0, false when
// the variable is unset or isn't a valid duration string.
func GetDuration(name string) (time.Duration, bool) {
	env, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}

	val, err := time.ParseDuration(env)
	if err != nil {
		return 0, false
	}

	return val, true
}
