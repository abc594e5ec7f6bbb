package pricing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/core/types"
)

func TestStorePublish(t *testing.T) {
	original := DefaultRateTable()
	store := NewStore(original)
	assert.Same(t, original, store.Current())

	regional := defaultRegional()
	regional["TX"] = regional[types.DefaultRegion]
	next, err := NewRateTable("2025.1", defaultBaseRates(), defaultSeasonal(), regional)
	require.NoError(t, err)

	previous, changed, err := store.Publish(next)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Same(t, original, previous)
	assert.Same(t, next, store.Current())

	history := store.History()
	require.Len(t, history, 2)
	assert.Equal(t, DefaultVersion, history[0].Version)
	assert.Equal(t, "2025.1", history[1].Version)
}

// TestStorePublishSameContent proves republishing identical tables is a no-op
func TestStorePublishSameContent(t *testing.T) {
	store := NewStore(DefaultRateTable())

	_, changed, err := store.Publish(DefaultRateTable())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, store.History(), 1)
}

func TestStorePublishNil(t *testing.T) {
	_, _, err := NewStore(nil).Publish(nil)
	assert.Error(t, err)
}

// TestStoreConcurrentReaders proves readers always see a complete snapshot during swaps
func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore(DefaultRateTable())
	alt, err := ParseHCL([]byte(altTable), "alt.hcl")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				table := store.Current()
				rate, _ := table.BaseRate(types.Apartment)
				if !rate.Equal(d("350")) && !rate.Equal(d("360")) {
					t.Errorf("torn read: apartment base rate %s", rate)
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			_, _, _ = store.Publish(alt)
		} else {
			_, _, _ = store.Publish(DefaultRateTable())
		}
	}
	wg.Wait()
}

const altTable = `
version    = "alt"
base_rates = { Apartment = 360 }
regional_factors = {
  default = { Apartment = 1 }
}
`
