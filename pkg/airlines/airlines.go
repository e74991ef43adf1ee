// Package airlines holds the static airline and airport reference tables
// used to turn provider codes into display strings. Lookups are best-effort:
// unknown codes fall back to the raw input and must never be treated as an
// error by callers.
package airlines

// carrierNames maps IATA carrier codes to display names.
var carrierNames = map[string]string{
	"FR": "Ryanair",
	"U2": "EasyJet",
	"LH": "Lufthansa",
	"KL": "KLM",
	"AF": "Air France",
	"BA": "British Airways",
	"W6": "Wizz Air",
	"EK": "Emirates",
	"TK": "Turkish Airlines",
	"QR": "Qatar Airways",
	"IB": "Iberia",
	"TP": "TAP Air Portugal",
	"LX": "Swiss",
	"OS": "Austrian Airlines",
	"SK": "SAS",
	"AY": "Finnair",
	"A3": "Aegean Airlines",
	"LO": "LOT Polish Airlines",
	"AZ": "ITA Airways",
	"EN": "Air Dolomiti",
	"WF": "Wideroe",
	"HV": "Transavia",
	"DY": "Norwegian",
	"VY": "Vueling",
	"EW": "Eurowings",
	"SN": "Brussels Airlines",
	"GA": "Garuda Indonesia",
}

// graphCarrierIDs maps the graph API's numeric carrier ids to IATA codes.
// The table is known to be partial; it exists only to improve display names
// and must never be a correctness dependency.
var graphCarrierIDs = map[int]string{
	31913: "FR",
	32090: "W6",
	30685: "U2",
	31669: "DY",
	32480: "VY",
	32132: "LH",
	30189: "AF",
	31609: "KL",
	31539: "BA",
	32348: "LO",
	32236: "AZ",
	31665: "SK",
	32753: "IB",
	32723: "TP",
	31717: "LX",
	31538: "OS",
	30870: "AY",
	30626: "A3",
	32728: "EW",
	32756: "HV",
	32657: "SN",
}

// airportCities maps IATA airport codes to city names for display strings.
var airportCities = map[string]string{
	"JFK": "New York",
	"EWR": "Newark",
	"LAX": "Los Angeles",
	"LHR": "London",
	"MAN": "Manchester",
	"CDG": "Paris",
	"AMS": "Amsterdam",
	"FRA": "Frankfurt",
	"MUC": "Munich",
	"BER": "Berlin",
	"MAD": "Madrid",
	"BCN": "Barcelona",
	"LIS": "Lisbon",
	"FCO": "Rome",
	"DUB": "Dublin",
	"CPH": "Copenhagen",
	"ARN": "Stockholm",
	"OSL": "Oslo",
	"HEL": "Helsinki",
	"VIE": "Vienna",
	"ZRH": "Zurich",
	"BRU": "Brussels",
	"ATH": "Athens",
	"WAW": "Warsaw",
	"KRK": "Krakow",
	"WRO": "Wroclaw",
	"GDN": "Gdansk",
}

// Name resolves an IATA carrier code to a display name, falling back to the
// raw code when unknown.
func Name(carrierCode string) string {
	if name, ok := carrierNames[carrierCode]; ok {
		return name
	}
	return carrierCode
}

// IATAFromGraphID resolves a graph-API numeric carrier id to an IATA code.
// The second return reports whether the id was in the table.
func IATAFromGraphID(id int) (string, bool) {
	code, ok := graphCarrierIDs[id]
	return code, ok
}

// City resolves an airport code to its city name, falling back to the code.
func City(airportCode string) string {
	if city, ok := airportCities[airportCode]; ok {
		return city
	}
	return airportCode
}

// DisplayAirport renders the canonical "<City> (<CODE>)" airport string.
func DisplayAirport(airportCode string) string {
	return City(airportCode) + " (" + airportCode + ")"
}
