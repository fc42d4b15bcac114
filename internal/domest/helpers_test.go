package domest

import (
	"strings"
	"testing"

	"domest/config"
)

// testBackground is a filler sequence of length n free of every
// registry enzyme's recognition sequence on both strands
func testBackground(n int) string {
	bg := strings.Repeat("ACTGAT", n/6+1)
	return bg[:n]
}

// withSites splices recognition sequences into a background of length
// n, keeping all positions stable
func withSites(n int, sites map[int]string) string {
	seq := testBackground(n)
	for pos, recog := range sites {
		seq = seq[:pos] + recog + seq[pos+len(recog):]
	}
	return seq
}

// testConfig is a fresh default config
func testConfig() *config.Config {
	return config.New()
}

// mustEnzyme fails the test on an unknown enzyme name
func mustEnzyme(t *testing.T, name string) enzyme {
	t.Helper()
	enz, err := NewEnzymeRegistry().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return enz
}
