package enrich

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func station(id, name string, lat, lon float64) models.RawStation {
	return models.RawStation{
		ID:         id,
		Name:       name,
		Coordinate: models.Coordinate{Lat: lat, Lon: lon},
		Address:    "somewhere",
	}
}

func TestEnrichJoinsAndRanks(t *testing.T) {
	t.Parallel()

	reference := models.Coordinate{Lat: 0, Lon: 0}
	stations := []models.RawStation{
		station("far", "Mobil", 0.5, 0),
		station("near", "Texaco", 0.1, 0),
		station("mid", "Oando", 0.3, 0),
	}
	priceEntries := []models.PriceEntry{
		{StationName: "texaco", PriceAndType: []models.FuelPrice{{Type: "PMS", Price: 617}}},
		{StationName: "Mobil", PriceAndType: []models.FuelPrice{{Type: "AGO", Price: 950}}},
	}

	got := Enrich(stations, priceEntries, reference)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"near", "mid", "far"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].DistanceKm < got[j].DistanceKm
	}))

	assert.Equal(t, []models.FuelPrice{{Type: "PMS", Price: 617}}, got[0].Prices)
	assert.Empty(t, got[1].Prices)
	assert.Equal(t, []models.FuelPrice{{Type: "AGO", Price: 950}}, got[2].Prices)
}

func TestEnrichNameNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		stationName string
		entryName   string
		wantMatch   bool
	}{
		{"padded vs lowercase", " Texaco ", "texaco", true},
		{"all caps", "TEXACO", "Texaco", true},
		{"interior whitespace differs", "Mobil  Filling", "Mobil Filling", false},
		{"substring does not match", "Mobil Filling Station", "Mobil", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stations := []models.RawStation{station("s1", tt.stationName, 1, 1)}
			priceEntries := []models.PriceEntry{
				{StationName: tt.entryName, PriceAndType: []models.FuelPrice{{Type: "PMS", Price: 600}}},
			}

			got := Enrich(stations, priceEntries, models.Coordinate{})
			require.Len(t, got, 1)

			if tt.wantMatch {
				assert.NotEmpty(t, got[0].Prices)
			} else {
				assert.Empty(t, got[0].Prices)
			}
		})
	}
}

func TestEnrichPreservesEveryStation(t *testing.T) {
	t.Parallel()

	stations := []models.RawStation{
		station("a", "NoPrices A", 1, 1),
		station("b", "NoPrices B", 2, 2),
		station("c", "NoPrices C", 3, 3),
	}

	got := Enrich(stations, nil, models.Coordinate{})
	require.Len(t, got, 3)

	seen := map[string]bool{}
	for _, s := range got {
		assert.NotNil(t, s.Prices)
		assert.Empty(t, s.Prices)
		seen[s.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestEnrichStableTieBreak(t *testing.T) {
	t.Parallel()

	// Same coordinate, same distance; input order must survive the sort.
	stations := []models.RawStation{
		station("first", "One", 1, 1),
		station("second", "Two", 1, 1),
		station("third", "Three", 1, 1),
	}

	got := Enrich(stations, nil, models.Coordinate{})
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "third", got[2].ID)
}

func TestEnrichEmptyInput(t *testing.T) {
	t.Parallel()

	got := Enrich(nil, []models.PriceEntry{{StationName: "Texaco"}}, models.Coordinate{})
	assert.Empty(t, got)
}

func TestEnrichDegenerateReference(t *testing.T) {
	t.Parallel()

	// Reference (0,0) means no real fix yet; distances are still computed.
	stations := []models.RawStation{station("s1", "Texaco", 52.5, 13.4)}

	got := Enrich(stations, nil, models.Coordinate{})
	require.Len(t, got, 1)
	assert.Greater(t, got[0].DistanceKm, 1000.0)
}

type fakeStationSource struct {
	stations []models.RawStation
	err      error
	delay    time.Duration
}

func (f *fakeStationSource) FindNearby(ctx context.Context, _ models.Coordinate) ([]models.RawStation, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.stations, f.err
}

type fakePriceSource struct {
	entries []models.PriceEntry
	err     error
	delay   time.Duration
}

func (f *fakePriceSource) GetAll(ctx context.Context) ([]models.PriceEntry, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.entries, f.err
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	p := NewPipeline(
		&fakeStationSource{stations: []models.RawStation{station("s1", "Texaco", 0.1, 0)}},
		&fakePriceSource{entries: []models.PriceEntry{
			{StationName: "texaco", PriceAndType: []models.FuelPrice{{Type: "PMS", Price: 617}}},
		}},
	)

	got, err := p.Run(context.Background(), models.Coordinate{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].Prices)
}

func TestPipelineRunConcurrentFetch(t *testing.T) {
	t.Parallel()

	// Each source takes ~80ms; a sequential pipeline would need ~160ms.
	p := NewPipeline(
		&fakeStationSource{delay: 80 * time.Millisecond},
		&fakePriceSource{delay: 80 * time.Millisecond},
	)

	start := time.Now()
	_, err := p.Run(context.Background(), models.Coordinate{})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, 150*time.Millisecond)
}

func TestPipelineRunPropagatesErrors(t *testing.T) {
	t.Parallel()

	stnErr := errors.New("overpass down")
	priceErr := errors.New("registry down")

	tests := []struct {
		name     string
		stations *fakeStationSource
		prices   *fakePriceSource
		wantErr  error
	}{
		{
			name:     "station source failure",
			stations: &fakeStationSource{err: stnErr},
			prices:   &fakePriceSource{},
			wantErr:  stnErr,
		},
		{
			name:     "price source failure",
			stations: &fakeStationSource{},
			prices:   &fakePriceSource{err: priceErr},
			wantErr:  priceErr,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPipeline(tt.stations, tt.prices)
			_, err := p.Run(context.Background(), models.Coordinate{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
