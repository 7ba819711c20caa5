/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ByPassAuth    bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.BoolVar(&ByPassAuth, "no_auth", false, "set to true to resolve the auth token as the username directly, dev only")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the running service, used in logging and tracing")
}

// Parse parses the shared flags. Call it once, early in main. Tests must not
// call it, the testing package owns flag parsing there.
func Parse() {
	flag.Parse()
}
