package mappers

import (
	"fmt"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/windows"
)

// Invoke runs mapper over one window and checks its output.
func Invoke(caller Caller, mapper Mapper, w windows.Window) ([]gts.Reading, error) {
	readings, err := mapper.Map(caller, w)
	if err != nil {
		return nil, fmt.Errorf("%s at tick %d: %w", mapper.Name(), w.Tick, err)
	}
	for _, r := range readings {
		if r.Value == nil || !r.Value.Kind().IsScalar() {
			return nil, fmt.Errorf("%s at tick %d: %w: %v", mapper.Name(), w.Tick, gts.ErrInvalidValue, r.Value)
		}
	}
	return readings, nil
}
