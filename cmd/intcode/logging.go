package main

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("intcode.cli")

// configureLogging sets the global verbosity (0 logs errors and warnings
// only) and the destination. An empty path logs to stderr.
func configureLogging(verbosity int, path string) {
	var p *string
	if path != "" {
		p = &path
	}
	commonlog.Configure(verbosity, p)
}
