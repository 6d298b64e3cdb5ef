package eventgen

import (
	"math/rand"
	"testing"

	"gotest.tools/v3/assert"
)

func testConfig() Config {
	return Config{
		InsertionRate:        0.05,
		DeletionRate:         0.05,
		DeletionExtraEdgeLen: 5,
		IndelLengthAlpha:     1.5,
		IndelTruncatedLength: 10,
	}
}

func TestRunNeverProducesNegativeLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := New(testConfig(), rng)
	_, final := g.Run(20, 5.0)
	assert.Assert(t, final >= 0)
}

func TestRunIsDeterministicGivenSameRNGSeed(t *testing.T) {
	g1 := New(testConfig(), rand.New(rand.NewSource(123)))
	events1, len1 := g1.Run(30, 3.0)

	g2 := New(testConfig(), rand.New(rand.NewSource(123)))
	events2, len2 := g2.Run(30, 3.0)

	assert.Equal(t, len1, len2)
	assert.DeepEqual(t, events1, events2)
}

func TestZeroRatesProduceNoEvents(t *testing.T) {
	cfg := testConfig()
	cfg.InsertionRate = 0
	cfg.DeletionRate = 0
	g := New(cfg, rand.New(rand.NewSource(1)))
	events, final := g.Run(50, 10.0)
	assert.Equal(t, len(events), 0)
	assert.Equal(t, final, 50)
}

func TestSampleDeletionClipsToEffectiveInterval(t *testing.T) {
	g := New(testConfig(), rand.New(rand.NewSource(5)))
	for i := 0; i < 200; i++ {
		ev, ok := g.sampleDeletion(10)
		if !ok {
			continue
		}
		assert.Assert(t, ev.Place+ev.Length <= 10)
		assert.Assert(t, ev.Place+ev.Length > 0)
	}
}

func TestTruncatedZipfNeverExceedsCeiling(t *testing.T) {
	g := New(testConfig(), rand.New(rand.NewSource(9)))
	for i := 0; i < 500; i++ {
		v := g.truncatedZipf()
		assert.Assert(t, v >= 1 && v <= g.cfg.IndelTruncatedLength)
	}
}
