package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
space:
  kind: euclidean1d
  velocity: 1
fleet:
  count: 3
  seat_capacity: 4
  dispatcher: bruteforce
demand:
  rate: 2.0
  seed: 7
  count: 50
t_cutoff: 1000
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ParsesAndValidates(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SpaceEuclidean1D, s.Space.Kind)
	assert.Equal(t, 3, s.Fleet.Count)
	assert.Equal(t, DispatcherBruteForce, s.Fleet.Dispatcher)
	assert.Equal(t, 2.0, s.Demand.Rate)
}

func TestLoad_RejectsTaxiWithMultiSeat(t *testing.T) {
	path := writeTemp(t, `
space:
  kind: euclidean1d
  velocity: 1
fleet:
  count: 1
  seat_capacity: 4
  dispatcher: taxi
demand:
  rate: 1
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownSpaceKind(t *testing.T) {
	path := writeTemp(t, `
space:
  kind: wormhole
fleet:
  count: 1
  seat_capacity: 1
  dispatcher: taxi
demand:
  rate: 1
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestScenario_BuildSpaceAndLocations(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	s, err := Load(path)
	require.NoError(t, err)

	sp, err := s.BuildSpace()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	locs := s.BuildInitialLocations(sp, rng)
	assert.Len(t, locs, 3)

	d, err := s.BuildDispatcher()
	require.NoError(t, err)
	assert.NotNil(t, d)
}
