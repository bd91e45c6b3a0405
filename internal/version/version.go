// Package version хранит сведения о сборке, заполняемые через -ldflags.
package version

import "fmt"

// Service — имя сервиса в логах, health-ответах и user-agent.
const Service = "storefront"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info returns version information populated via -ldflags.
func Info() (v, c, d string) { return version, commit, date }

func GetVersion() string { return version }

func GetCommit() string { return commit }

func GetDate() string { return date }

func String() string {
	return fmt.Sprintf("%s version=%s commit=%s date=%s", Service, version, commit, date)
}
