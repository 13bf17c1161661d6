package convection

import (
	"github.com/cwbudde/algo-convection/internal/testutil"
)

const (
	testFS     = 10000.0
	testLength = 32768
)

// travelingPair returns a broadband 500 Hz tone in noise seen by sensor 1 and,
// delay samples later, by sensor 2.
func travelingPair(delay int, seed int64) (Signal, Signal) {
	src := testutil.NoisySine(500, testFS, 0.5, seed, testLength+delay)
	lead, lag := testutil.DelayedPair(src, delay, testLength)
	return Signal{Samples: lead, SampleRate: testFS}, Signal{Samples: lag, SampleRate: testFS}
}

// burstPair returns a Hann-enveloped 500 Hz burst of ten cycles and its copy
// delayed by delay samples.
func burstPair(delay, length int) (Signal, Signal) {
	b1 := testutil.SineBurst(500, testFS, 10, 400, length)
	b2 := testutil.SineBurst(500, testFS, 10, 400+delay, length)
	return Signal{Samples: b1, SampleRate: testFS}, Signal{Samples: b2, SampleRate: testFS}
}
