package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	t.Run("query with location", func(t *testing.T) {
		assert.Equal(t, "Raleigh_North_Carolina_plumbers_results.csv",
			Filename("plumbers in Raleigh North Carolina"))
	})

	t.Run("multi word business type", func(t *testing.T) {
		assert.Equal(t, "Fuquay_Varina_North_Carolina_HVAC_contractor_results.csv",
			Filename("HVAC contractor in Fuquay-Varina North Carolina"))
	})

	t.Run("location stops at comma", func(t *testing.T) {
		assert.Equal(t, "Austin_restaurants_results.csv",
			Filename("restaurants in Austin, TX"))
	})

	t.Run("no location with three words", func(t *testing.T) {
		// Last two words stand in for the location
		assert.Equal(t, "tacos_downtown_best_results.csv",
			Filename("best tacos downtown"))
	})

	t.Run("no location with two words", func(t *testing.T) {
		assert.Equal(t, "search_results_coffee_results.csv",
			Filename("coffee shops"))
	})

	t.Run("special characters stripped", func(t *testing.T) {
		assert.Equal(t, "St_Louis_pizza_wings_results.csv",
			Filename("pizza & wings in St. Louis!"))
	})

	t.Run("uppercase in separator", func(t *testing.T) {
		// The location match is case-insensitive but the business type
		// split is not, so an uppercase IN leaves the whole query as the
		// business type
		assert.Equal(t, "Durham_Dentists_IN_Durham_results.csv",
			Filename("Dentists IN Durham"))
	})
}
