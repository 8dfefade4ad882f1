package gts

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mmcloughlin/geohash"
)

var ErrInvalidLocation = errors.New("invalid location")

// Location is an optional point encoded as a 64 bits geohash.
type Location struct {
	hash  uint64
	valid bool
}

var NoLocation = Location{}

func NewLocation(lat, lon float64) (Location, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) ||
		lat < -90 || lat > 90 ||
		lon < -180 || lon > 180 {
		return NoLocation, fmt.Errorf("%w: %v:%v", ErrInvalidLocation, lat, lon)
	}
	return Location{
		hash:  geohash.EncodeInt(lat, lon),
		valid: true,
	}, nil
}

func LocationFromHash(hash uint64) Location {
	return Location{
		hash:  hash,
		valid: true,
	}
}

func (l Location) Valid() bool {
	return l.valid
}

func (l Location) Hash() (uint64, bool) {
	return l.hash, l.valid
}

// LatLon decodes the point. Absent locations report NaN coordinates.
func (l Location) LatLon() (lat, lon float64, ok bool) {
	if !l.valid {
		return math.NaN(), math.NaN(), false
	}
	lat, lon = geohash.DecodeInt(l.hash)
	return lat, lon, true
}

func (l Location) String() string {
	lat, lon, ok := l.LatLon()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(lat, 'f', 6, 64) + ":" + strconv.FormatFloat(lon, 'f', 6, 64)
}

type Elevation int64

const NoElevation Elevation = math.MinInt64

func (e Elevation) Valid() bool {
	return e != NoElevation
}

func (e Elevation) String() string {
	if !e.Valid() {
		return ""
	}
	return strconv.FormatInt(int64(e), 10)
}
