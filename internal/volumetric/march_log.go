package volumetric

import (
	"fmt"
	"sync/atomic"
)

type Category uint8

const (
	Transparent Category = iota // ray saw no medium (T == 1)
	Partial                     // ray was partly attenuated
	Opaque                      // ray ended with T below opaqueThreshold
	numCategories
)

const opaqueThreshold = 1e-3

var categoryNames = [numCategories]string{"transparent", "partial", "opaque"}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// MarchLog counts camera rays by their final transmittance.
type MarchLog struct {
	counts [numCategories]atomic.Int64
}

var marchLog = &MarchLog{}

func categorize(T float32) Category {
	switch {
	case T >= 1:
		return Transparent
	case T < opaqueThreshold:
		return Opaque
	default:
		return Partial
	}
}

func logMarch(T float32) {
	marchLog.counts[categorize(T)].Add(1)
}

// Count returns how many rays ended in category c.
func (l *MarchLog) Count(c Category) int64 {
	if c >= numCategories {
		return 0
	}
	return l.counts[c].Load()
}

func (l *MarchLog) reset() {
	for i := range l.counts {
		l.counts[i].Store(0)
	}
}

func marchStats() {
	for c := Category(0); c < numCategories; c++ {
		fmt.Printf("Ray type %s: %d rays\n", c, marchLog.Count(c))
	}
}
