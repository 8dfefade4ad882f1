// Package engineconfigs resolves the settings of script engines from flags and CUE files.
package engineconfigs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}
