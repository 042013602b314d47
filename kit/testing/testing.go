package testing

import (
	"context"
	"os"
)

const enableContainersEnv = "TEST_WITH_CONTAINERS"

// EnableContainers reports whether docker backed integration tests should run.
func EnableContainers() bool {
	return os.Getenv(enableContainersEnv) == "true"
}

// Container is a disposable dependency started for one test. GetURI returns
// what the matching kit constructor expects: an address for redis and kafka,
// a DSN for postgres.
type Container interface {
	GetURI() string
	Terminate(context.Context) error
}
