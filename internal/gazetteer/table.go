package gazetteer

func country(lat, lng float64) Place {
	return Place{Type: TypeCountry, Lat: lat, Lng: lng}
}

// places maps lower-cased canonical keys to their display attributes.
var places = map[string]Place{
	"norway":       country(59.9, 10.7),
	"sweden":       country(59.3, 18.1),
	"finland":      country(60.2, 24.9),
	"uk":           country(51.5, -0.1),
	"france":       country(48.9, 2.3),
	"germany":      country(52.5, 13.4),
	"spain":        country(40.4, -3.7),
	"italy":        country(41.9, 12.5),
	"belgium":      country(50.8, 4.4),
	"ukraine":      country(50.4, 30.5),
	"russia":       country(55.8, 37.6),
	"turkey":       country(41.0, 28.9),
	"iran":         country(35.7, 51.4),
	"israel":       country(31.8, 35.2),
	"palestine":    country(31.9, 35.2),
	"gaza":         country(31.5, 34.5),
	"lebanon":      country(33.9, 35.5),
	"saudi":        country(24.7, 46.7),
	"qatar":        country(25.3, 51.5),
	"uae":          country(24.5, 54.4),
	"iraq":         country(33.3, 44.4),
	"syria":        country(33.5, 36.3),
	"yemen":        country(15.4, 44.2),
	"china":        country(39.9, 116.4),
	"japan":        country(35.7, 139.7),
	"india":        country(28.6, 77.2),
	"south korea":  country(37.6, 127.0),
	"pakistan":     country(33.7, 73.0),
	"bangladesh":   country(23.8, 90.4),
	"indonesia":    country(-6.2, 106.8),
	"taiwan":       country(25.0, 121.5),
	"usa":          country(38.9, -77.0),
	"canada":       country(45.4, -75.7),
	"mexico":       country(19.4, -99.1),
	"brazil":       country(-15.8, -47.9),
	"venezuela":    country(10.5, -66.9),
	"sudan":        country(15.6, 32.5),
	"ethiopia":     country(9.0, 38.7),
	"south africa": country(-33.9, 18.4),
	"nigeria":      country(9.1, 7.5),
	"madagascar":   country(-18.9, 47.5),
	"kenya":        country(-1.3, 36.8),
	"mozambique":   country(-25.9, 32.6),
	"niger":        country(13.5, 2.1),
	"ghana":        country(5.6, -0.2),
	"switzerland":  country(46.9, 7.4),
	"oman":         country(23.6, 58.5),
}

// aliases maps demonyms, capitals and code names to their canonical key.
var aliases = map[string]string{
	"united states": "usa", "u.s.": "usa", "america": "usa", "washington": "usa",
	"american": "usa", "pentagon": "usa", "white house": "usa",
	"britain": "uk", "british": "uk", "england": "uk", "london": "uk",
	"scottish": "uk", "scotland": "uk",
	"paris": "france", "french": "france",
	"berlin": "germany", "german": "germany",
	"moscow": "russia", "russian": "russia", "kremlin": "russia",
	"beijing": "china", "chinese": "china",
	"tokyo": "japan", "japanese": "japan",
	"iranian": "iran", "tehran": "iran",
	"israeli": "israel", "tel aviv": "israel", "jerusalem": "israel", "netanyahu": "israel",
	"palestinian": "palestine", "west bank": "palestine",
	"turkish": "turkey", "ankara": "turkey", "istanbul": "turkey",
	"ukrainian": "ukraine", "kyiv": "ukraine", "kiev": "ukraine",
	"saudi arabia": "saudi", "riyadh": "saudi",
	"iraqi": "iraq", "baghdad": "iraq",
	"syrian": "syria", "damascus": "syria",
	"lebanese": "lebanon", "beirut": "lebanon", "hezbollah": "lebanon",
	"yemeni": "yemen", "houthi": "yemen", "houthis": "yemen",
	"indian": "india", "delhi": "india", "mumbai": "india", "new delhi": "india",
	"pakistani": "pakistan",
	"south korean": "south korea", "seoul": "south korea", "korean": "south korea",
	"taiwanese": "taiwan", "taipei": "taiwan",
	"brazilian": "brazil",
	"mexican": "mexico",
	"canadian": "canada", "ottawa": "canada",
	"sudanese": "sudan", "khartoum": "sudan",
	"ethiopian": "ethiopia",
	"nigerian": "nigeria",
	"kenyan": "kenya", "nairobi": "kenya",
	"swiss": "switzerland", "geneva": "switzerland", "zurich": "switzerland",
	"omani": "oman", "muscat": "oman",
	"spanish": "spain", "madrid": "spain",
	"italian": "italy", "rome": "italy",
	"belgian": "belgium", "brussels": "belgium",
	"norwegian": "norway", "oslo": "norway",
	"swedish": "sweden", "stockholm": "sweden",
	"finnish": "finland", "helsinki": "finland",
	"qatari": "qatar", "doha": "qatar",
	"emirati": "uae", "dubai": "uae", "abu dhabi": "uae",
	"venezuelan": "venezuela", "caracas": "venezuela",
	"indonesian": "indonesia", "jakarta": "indonesia",
	"ghanaian": "ghana", "accra": "ghana",
	"strait of hormuz": "oman",
	"arabian sea":      "oman",
}
