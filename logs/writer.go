package logs

import (
	"io"
	"os"
)

type Writer io.Writer

// Writer is stderr so that stdout stays free for stack snapshots.
func (Module) Writer() Writer {
	return os.Stderr
}
