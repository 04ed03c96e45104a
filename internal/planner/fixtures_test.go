package planner

import (
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/geo"
)

// city builds a destination-city fixture.
func city(id, name, state string, lat, lon float64) catalog.Stop {
	return catalog.Stop{
		ID:          id,
		Name:        name,
		Category:    catalog.CategoryDestinationCity,
		CityName:    name,
		State:       state,
		Location:    geo.Point{Lat: lat, Lon: lon},
		IsMajorStop: true,
	}
}

// poi builds a point-of-interest fixture.
func poi(id, name string, cat catalog.Category, cityName, state string, lat, lon float64) catalog.Stop {
	return catalog.Stop{
		ID:       id,
		Name:     name,
		Category: cat,
		CityName: cityName,
		State:    state,
		Location: geo.Point{Lat: lat, Lon: lon},
	}
}

// routeCities returns the classic destination-city chain from Chicago to
// Santa Monica, in driving order.
func routeCities() []catalog.Stop {
	return []catalog.Stop{
		city("city-chicago", "Chicago", "IL", 41.8781, -87.6298),
		city("city-springfield-il", "Springfield", "IL", 39.7817, -89.6501),
		city("city-st-louis", "St. Louis", "MO", 38.6270, -90.1994),
		city("city-springfield-mo", "Springfield", "MO", 37.2090, -93.2923),
		city("city-joplin", "Joplin", "MO", 37.0842, -94.5133),
		city("city-tulsa", "Tulsa", "OK", 36.1540, -95.9928),
		city("city-okc", "Oklahoma City", "OK", 35.4676, -97.5164),
		city("city-amarillo", "Amarillo", "TX", 35.2220, -101.8313),
		city("city-albuquerque", "Albuquerque", "NM", 35.0844, -106.6504),
		city("city-gallup", "Gallup", "NM", 35.5281, -108.7426),
		city("city-flagstaff", "Flagstaff", "AZ", 35.1983, -111.6513),
		city("city-kingman", "Kingman", "AZ", 35.1894, -114.0530),
		city("city-barstow", "Barstow", "CA", 34.8958, -117.0173),
		city("city-santa-monica", "Santa Monica", "CA", 34.0195, -118.4912),
	}
}

// findCity returns the fixture city with the given id.
func findCity(cities []catalog.Stop, id string) catalog.Stop {
	for _, c := range cities {
		if c.ID == id {
			return c
		}
	}
	return catalog.Stop{}
}
