package intcode

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("intcode")
