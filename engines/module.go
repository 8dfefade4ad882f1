// Package engines builds configured machines with every operator installed.
package engines

import (
	"github.com/reusee/dscope"
	"github.com/reusee/gtscript/engineconfigs"
	"github.com/reusee/gtscript/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs engineconfigs.Module
}
