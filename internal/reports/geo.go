package reports

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Coordinates of major Nigerian cities, used instead of a live geocoder
var nigerianLocations = map[string][2]float64{
	"Abuja":         {9.05785, 7.49508},
	"Lagos":         {6.5244, 3.3792},
	"Port Harcourt": {4.8156, 7.0498},
	"Kano":          {12.0022, 8.5919},
	"Ibadan":        {7.3775, 3.9470},
	"Jos":           {9.8965, 8.8583},
	"Enugu":         {6.4400, 7.4946},
	"Abia":          {5.4541, 7.5153},
	"Nasarawa":      {8.5083, 8.5215},
	"Kaduna":        {10.5105, 7.4165},
	"Makurdi":       {7.7325, 8.5391},
}

// geocode resolves a location name against the fixed city table
func geocode(location string) (*float64, *float64) {
	if location == "" {
		return nil, nil
	}
	if coords, ok := nigerianLocations[titleCase(location)]; ok {
		lat, lon := coords[0], coords[1]
		return &lat, &lon
	}
	return nil, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
