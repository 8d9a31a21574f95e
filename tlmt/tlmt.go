// Package tlmt sends anonymous usage events.
package tlmt

import (
	"context"
	"crypto/sha256"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"
)

var (
	once       sync.Once
	identifier machineIdentifier
)

type Event struct {
	AnonymousID string
	Name        string
	Properties  map[string]any
}

// NewEvent builds an event carrying the machine's anonymous id and platform
// metadata merged with props. props wins on key collisions.
func NewEvent(name string, props map[string]any) Event {
	id := generateMachineID()

	ev := Event{
		AnonymousID: id.id,
		Name:        name,
		Properties:  make(map[string]any, len(id.meta)+len(props)),
	}

	for k, v := range id.meta {
		ev.Properties[k] = v
	}

	for k, v := range props {
		ev.Properties[k] = v
	}

	return ev
}

type Telemetry interface {
	Send(ctx context.Context, event Event) error
	Close() error
}

type machineIdentifier struct {
	id   string
	meta map[string]any
}

func generateMachineID() machineIdentifier {
	once.Do(func() {
		seed := ""
		meta := make(map[string]any)

		info, err := host.Info()
		if err == nil {
			seed = info.HostID
			meta["os"] = info.OS
			meta["platform"] = info.Platform
			meta["platform_family"] = info.PlatformFamily
			meta["platform_version"] = info.PlatformVersion
		}

		if seed == "" {
			seed = uuid.New().String()
		}

		hash := sha256.New()
		hash.Write([]byte(seed))
		hash.Write([]byte(runtime.GOARCH))
		hash.Write([]byte(runtime.GOOS))

		meta["go_version"] = runtime.Version()

		identifier.id = fmt.Sprintf("%x", hash.Sum(nil))
		identifier.meta = meta
	})

	return identifier
}
