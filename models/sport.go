package models

import "strings"

type SportType string

const (
	SportCricket     SportType = "cricket"
	SportHockey      SportType = "hockey"
	SportFootball    SportType = "football"
	SportBasketball  SportType = "basketball"
	SportVolleyball  SportType = "volleyball"
	SportTennis      SportType = "tennis"
	SportTableTennis SportType = "table-tennis"
	SportGeneric     SportType = "generic"
)

// ParseSportType normalizes free-text sport names ("Table Tennis", "table_tennis").
// Unlisted sports ("Badminton") keep their normalized name; an empty name maps
// to SportGeneric.
func ParseSportType(s string) SportType {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	switch SportType(norm) {
	case SportCricket, SportHockey, SportFootball, SportBasketball,
		SportVolleyball, SportTennis, SportTableTennis:
		return SportType(norm)
	case "tt", "tabletennis":
		return SportTableTennis
	case "":
		return SportGeneric
	}
	return SportType(norm)
}

// Gender - нормализованный пол для разбиения турнирных таблиц.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = ""
)

// NormalizeGender maps the free-text gender stored on a match to a standings bucket.
func NormalizeGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "boys", "boy", "m", "men":
		return GenderMale
	case "female", "girls", "girl", "f", "women":
		return GenderFemale
	}
	return GenderUnknown
}
