package gts

import (
	"strconv"

	"github.com/reusee/gtscript/values"
)

type Reading struct {
	Tick      int64
	Location  Location
	Elevation Elevation
	Value     values.Value
}

// At builds a reading without location nor elevation.
func At(tick int64, value values.Value) Reading {
	return Reading{
		Tick:      tick,
		Location:  NoLocation,
		Elevation: NoElevation,
		Value:     value,
	}
}

func (r Reading) String() string {
	return strconv.FormatInt(r.Tick, 10) + "/" +
		r.Location.String() + "/" +
		r.Elevation.String() + " " +
		r.Value.String()
}
