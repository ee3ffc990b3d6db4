// Package catalog holds the built-in landmark lists for the curated tiers.
package catalog

import (
	"fmt"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
)

func lm(name, country string, lon, lat float64) domain.Landmark {
	return domain.Landmark{Name: name, Country: country, Point: geo.Point{Lon: lon, Lat: lat}}
}

// Easy is a list of well-known world cities.
var Easy = []domain.Landmark{
	lm("Buenos Aires", "Argentina", -58.3816, -34.6037),
	lm("Adelaide", "Australia", 138.6007, -34.9285),
	lm("Brisbane", "Australia", 153.0251, -27.4698),
	lm("Canberra", "Australia", 149.1287, -35.2809),
	lm("Melbourne", "Australia", 144.9631, -37.8162),
	lm("Perth", "Australia", 115.8605, -31.9505),
	lm("Sydney", "Australia", 151.2076, -33.8651),
	lm("São Paulo", "Brazil", -46.6333, -23.5505),
	lm("Beijing", "China", 116.3972, 39.9075),
	lm("Paris", "France", 2.3522, 48.8566),
	lm("Berlin", "Germany", 13.4050, 52.5200),
	lm("New Delhi", "India", 77.2245, 28.6353),
	lm("Mumbai", "India", 72.8777, 19.0760),
	lm("Rome", "Italy", 12.4964, 41.9028),
	lm("Tokyo", "Japan", 139.6917, 35.6895),
	lm("Osaka", "Japan", 135.5022, 34.6937),
	lm("Auckland", "New Zealand", 174.7633, -36.8485),
	lm("Christchurch", "New Zealand", 172.6362, -43.5321),
	lm("Manila", "Philippines", 120.9842, 14.5995),
	lm("Moscow", "Russia", 37.6173, 55.7558),
	lm("Singapore", "Singapore", 103.8198, 1.3521),
	lm("Seoul", "South Korea", 126.9780, 37.5665),
	lm("Madrid", "Spain", -3.7038, 40.4168),
	lm("Oslo", "Norway", 10.7522, 59.9139),
	lm("Taipei", "Taiwan", 121.5654, 25.0330),
	lm("Bangkok", "Thailand", 100.5018, 13.7563),
	lm("Istanbul", "Turkey", 28.9784, 41.0082),
	lm("London", "United Kingdom", -0.1276, 51.5074),
	lm("New York", "United States", -74.0060, 40.7128),
	lm("Ho Chi Minh City", "Vietnam", 106.8456, 10.8231),
}

// Normal trades household names for regional capitals and secondary cities.
var Normal = []domain.Landmark{
	lm("Reykjavík", "Iceland", -21.9426, 64.1466),
	lm("Tallinn", "Estonia", 24.7536, 59.4370),
	lm("Kraków", "Poland", 19.9450, 50.0647),
	lm("Porto", "Portugal", -8.6291, 41.1579),
	lm("Marseille", "France", 5.3698, 43.2965),
	lm("Zürich", "Switzerland", 8.5417, 47.3769),
	lm("Thessaloniki", "Greece", 22.9444, 40.6401),
	lm("Tbilisi", "Georgia", 44.7930, 41.7151),
	lm("Almaty", "Kazakhstan", 76.8512, 43.2220),
	lm("Tashkent", "Uzbekistan", 69.2401, 41.2995),
	lm("Tehran", "Iran", 51.3890, 35.6892),
	lm("Muscat", "Oman", 58.4059, 23.5880),
	lm("Addis Ababa", "Ethiopia", 38.7578, 8.9806),
	lm("Nairobi", "Kenya", 36.8219, -1.2921),
	lm("Lagos", "Nigeria", 3.3792, 6.5244),
	lm("Dakar", "Senegal", -17.4677, 14.7167),
	lm("Casablanca", "Morocco", -7.5898, 33.5731),
	lm("Tunis", "Tunisia", 10.1815, 36.8065),
	lm("Windhoek", "Namibia", 17.0658, -22.5609),
	lm("Antananarivo", "Madagascar", 47.5079, -18.8792),
	lm("Durban", "South Africa", 31.0218, -29.8587),
	lm("Kathmandu", "Nepal", 85.3240, 27.7172),
	lm("Colombo", "Sri Lanka", 79.8612, 6.9271),
	lm("Chengdu", "China", 104.0665, 30.5723),
	lm("Ulaanbaatar", "Mongolia", 106.9057, 47.8864),
	lm("Sapporo", "Japan", 141.3545, 43.0618),
	lm("Busan", "South Korea", 129.0756, 35.1796),
	lm("Da Nang", "Vietnam", 108.2022, 16.0544),
	lm("Surabaya", "Indonesia", 112.7521, -7.2575),
	lm("Darwin", "Australia", 130.8456, -12.4634),
	lm("Hobart", "Australia", 147.3272, -42.8821),
	lm("Wellington", "New Zealand", 174.7762, -41.2865),
	lm("Suva", "Fiji", 178.4419, -18.1416),
	lm("Honolulu", "United States", -157.8583, 21.3069),
	lm("Anchorage", "United States", -149.9003, 61.2181),
	lm("Winnipeg", "Canada", -97.1384, 49.8951),
	lm("Guadalajara", "Mexico", -103.3496, 20.6597),
	lm("Medellín", "Colombia", -75.5636, 6.2442),
	lm("La Paz", "Bolivia", -68.1193, -16.4897),
	lm("Punta Arenas", "Chile", -70.9171, -53.1638),
}

// Landmarks returns the ordered list for a curated tier and nil otherwise.
func Landmarks(d domain.Difficulty) []domain.Landmark {
	switch d {
	case domain.DifficultyEasy:
		return Easy
	case domain.DifficultyNormal:
		return Normal
	}
	return nil
}

// Validate checks that every curated tier has entries with valid coordinates.
func Validate() error {
	for _, d := range domain.Difficulties {
		if !d.Curated() {
			continue
		}
		list := Landmarks(d)
		if len(list) == 0 {
			return fmt.Errorf("%w: %s", domain.ErrEmptyTier, d)
		}
		for _, l := range list {
			if err := l.Point.Validate(); err != nil {
				return fmt.Errorf("landmark %q: %w", l.Name, err)
			}
		}
	}
	return nil
}
