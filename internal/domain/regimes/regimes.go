// Package regimes classifies countries by political regime type and
// carries reference lists of authoritarian leaders and entities used
// by the content analysis engine.
package regimes

import "strings"

// Classification values
const (
	Democratic          = "democratic"
	HybridAuthoritarian = "hybrid_authoritarian"
	FullyAuthoritarian  = "fully_authoritarian"
	Unclassified        = "unclassified"
	Unknown             = "unknown"
)

// Region values
const (
	RegionAmericas    = "americas"
	RegionMENA        = "middle_east_north_africa"
	RegionEurope      = "europe_central_asia"
	RegionAsiaPacific = "asia_pacific"
	RegionAfrica      = "africa"
	RegionUnknown     = "unknown"
)

// Info describes the regime classification of one country
type Info struct {
	Classification  string `json:"classification"`
	Region          string `json:"region"`
	IsAuthoritarian bool   `json:"is_authoritarian"`
}

var americasDemocratic = []string{
	"Argentina", "Belize", "Brazil", "Canada", "Chile", "Colombia",
	"Costa Rica", "Dominican Republic", "Ecuador", "Guatemala", "Guyana",
	"Jamaica", "Mexico", "Panama", "Paraguay", "Peru", "Suriname",
	"United States of America", "United States", "USA", "Uruguay",
	"Saint Kitts and Nevis", "Dominica", "Antigua and Barbuda",
	"Saint Vincent and the Grenadines", "Grenada", "St Lucia", "Saint Lucia",
	"Barbados", "Bahamas", "Trinidad and Tobago",
}

var americasHybrid = []string{
	"Bolivia", "El Salvador", "Honduras",
}

var americasFully = []string{
	"Cuba", "Nicaragua", "Venezuela",
}

var americasUnclassified = []string{
	"Haiti",
}

var menaDemocratic = []string{
	"Israel",
}

var menaHybrid = []string{
	"Iraq", "Lebanon",
}

var menaFully = []string{
	"Algeria", "Bahrain", "Egypt", "Iran", "Jordan", "Kuwait", "Libya",
	"Morocco", "Oman", "Qatar", "Saudi Arabia", "Syria", "Tunisia",
	"United Arab Emirates", "UAE", "Yemen",
}

var europeDemocratic = []string{
	"Albania", "Armenia", "Austria", "Belgium", "Bosnia and Herzegovina",
	"Bulgaria", "Croatia", "Czech Republic", "Czechia", "Cyprus", "Denmark",
	"Estonia", "Finland", "France", "Germany", "Greece", "Iceland",
	"Ireland", "Italy", "Latvia", "Lithuania", "Luxembourg", "Moldova",
	"Montenegro", "Kosovo", "North Macedonia", "Netherlands", "Norway",
	"Poland", "Portugal", "Romania", "Sweden", "Switzerland", "Slovakia",
	"Slovenia", "Spain", "Ukraine", "United Kingdom", "UK", "Britain",
	"Great Britain", "San Marino", "Monaco", "Liechtenstein", "Andorra",
	"Malta",
}

var europeHybrid = []string{
	"Georgia", "Hungary", "Serbia",
}

var europeFully = []string{
	"Azerbaijan", "Belarus", "Kazakhstan", "Russia", "Russian Federation",
	"Tajikistan", "Turkmenistan", "Turkey", "Uzbekistan", "Kyrgyzstan",
}

var asiaPacificDemocratic = []string{
	"Australia", "Bhutan", "Japan", "Mongolia", "Nepal", "New Zealand",
	"Papua New Guinea", "South Korea", "Republic of Korea", "Taiwan",
	"Timor-Leste", "East Timor", "Sri Lanka", "Micronesia", "Tuvalu",
	"Nauru", "Palau", "Marshall Islands", "Tonga", "Kiribati", "Samoa",
	"Vanuatu", "Solomon Islands",
}

var asiaPacificHybrid = []string{
	"Bangladesh", "Fiji", "India", "Malaysia", "Maldives", "Pakistan",
	"Philippines", "Singapore", "Thailand", "Indonesia",
}

var asiaPacificFully = []string{
	"Afghanistan", "Brunei", "Burma", "Myanmar", "Cambodia", "China",
	"PRC", "People's Republic of China", "Laos", "North Korea", "DPRK",
	"Democratic People's Republic of Korea", "Vietnam",
}

var africaDemocratic = []string{
	"Botswana", "Ghana", "Lesotho", "Liberia", "Namibia", "South Africa",
	"Cape Verde", "Cabo Verde", "Mauritius", "Sao Tome and Principe",
	"Seychelles",
}

var africaHybrid = []string{
	"Benin", "Côte d'Ivoire", "Cote d'Ivoire", "Ivory Coast", "The Gambia",
	"Gambia", "Kenya", "Madagascar", "Malawi", "Senegal", "Sierra Leone",
	"Togo", "Zambia",
}

var africaFully = []string{
	"Angola", "Burundi", "Burkina Faso", "Cameroon",
	"Central African Republic", "CAR", "Chad", "Comoros",
	"Democratic Republic of Congo", "DRC", "DR Congo", "Congo-Kinshasa",
	"Djibouti", "Equatorial Guinea", "Eritrea", "Ethiopia", "Gabon",
	"Guinea", "Guinea-Bissau", "Mali", "Mauritania", "Mozambique", "Niger",
	"Nigeria", "Republic of Congo", "Congo-Brazzaville", "Rwanda",
	"Somalia", "South Sudan", "Sudan", "Swaziland", "Eswatini", "Uganda",
	"Tanzania", "Zimbabwe",
}

// knownLeaders lists current and historical authoritarian leaders.
// Order matters: the detector derives pattern subsets from the head
// of this list, so current heads of state come first.
var knownLeaders = []string{
	"Xi Jinping",
	"Kim Jong Un",
	"Kim Jong-un",
	"Vladimir Putin",
	"Putin",
	"Alexander Lukashenko",
	"Lukashenko",
	"Bashar al-Assad",
	"Assad",
	"Nicolás Maduro",
	"Nicolas Maduro",
	"Maduro",
	"Daniel Ortega",
	"Ortega",
	"Miguel Díaz-Canel",
	"Díaz-Canel",
	"Diaz-Canel",
	"Ayatollah Khamenei",
	"Khamenei",
	"Mohammed bin Salman",
	"MBS",
	"Abdel Fattah el-Sisi",
	"el-Sisi",
	"Sisi",
	"Ilham Aliyev",
	"Aliyev",
	"Gurbanguly Berdimuhamedow",
	"Serdar Berdimuhamedow",
	"Emomali Rahmon",
	"Islam Karimov",
	"Shavkat Mirziyoyev",
	"Hun Sen",
	"Hun Manet",
	"Recep Tayyip Erdoğan",
	"Erdogan",
	"Paul Kagame",
	"Kagame",
	"Yoweri Museveni",
	"Museveni",
	"Isaias Afwerki",
	"Teodoro Obiang",
	"Obiang",
	"Stalin",
	"Joseph Stalin",
	"Mao Zedong",
	"Mao Tse-tung",
	"Mao",
	"Adolf Hitler",
	"Hitler",
	"Pol Pot",
	"Fidel Castro",
	"Castro",
	"Muammar Gaddafi",
	"Gaddafi",
	"Qaddafi",
	"Saddam Hussein",
	"Saddam",
	"Robert Mugabe",
	"Mugabe",
	"Idi Amin",
	"Pinochet",
	"Augusto Pinochet",
	"Francisco Franco",
	"Franco",
	"Benito Mussolini",
	"Mussolini",
	"Kim Il-sung",
	"Kim Jong-il",
	"Hugo Chávez",
	"Hugo Chavez",
	"Chavez",
}

// knownEntities lists organizations tied to authoritarian regimes
var knownEntities = []string{
	"Chinese Communist Party",
	"CCP",
	"CPC",
	"Communist Party of China",
	"United Russia",
	"Kremlin",
	"FSB",
	"KGB",
	"IRGC",
	"Islamic Revolutionary Guard Corps",
	"Hezbollah",
	"Hamas",
	"Wagner Group",
	"Colectivos",
	"Basij",
}

type regionSet struct {
	region    string
	countries []string
}

var democraticSets = []regionSet{
	{RegionAmericas, americasDemocratic},
	{RegionMENA, menaDemocratic},
	{RegionEurope, europeDemocratic},
	{RegionAsiaPacific, asiaPacificDemocratic},
	{RegionAfrica, africaDemocratic},
}

var hybridSets = []regionSet{
	{RegionAmericas, americasHybrid},
	{RegionMENA, menaHybrid},
	{RegionEurope, europeHybrid},
	{RegionAsiaPacific, asiaPacificHybrid},
	{RegionAfrica, africaHybrid},
}

var fullySets = []regionSet{
	{RegionAmericas, americasFully},
	{RegionMENA, menaFully},
	{RegionEurope, europeFully},
	{RegionAsiaPacific, asiaPacificFully},
	{RegionAfrica, africaFully},
}

func lookup(sets []regionSet, country string) (string, bool) {
	for _, s := range sets {
		for _, c := range s.countries {
			if c == country {
				return s.region, true
			}
		}
	}
	return "", false
}

// Classify returns the regime classification for a country name.
// Matching is exact after trimming whitespace; unknown countries are
// treated as not authoritarian.
func Classify(country string) Info {
	name := strings.TrimSpace(country)

	if region, ok := lookup(democraticSets, name); ok {
		return Info{Classification: Democratic, Region: region, IsAuthoritarian: false}
	}
	if region, ok := lookup(hybridSets, name); ok {
		return Info{Classification: HybridAuthoritarian, Region: region, IsAuthoritarian: true}
	}
	if region, ok := lookup(fullySets, name); ok {
		return Info{Classification: FullyAuthoritarian, Region: region, IsAuthoritarian: true}
	}
	for _, c := range americasUnclassified {
		if c == name {
			return Info{Classification: Unclassified, Region: RegionAmericas, IsAuthoritarian: false}
		}
	}
	return Info{Classification: Unknown, Region: RegionUnknown, IsAuthoritarian: false}
}

// IsAuthoritarian reports whether a country is any form of authoritarian regime
func IsAuthoritarian(country string) bool {
	return Classify(country).IsAuthoritarian
}

// IsFullyAuthoritarian reports whether a country is fully authoritarian
func IsFullyAuthoritarian(country string) bool {
	return Classify(country).Classification == FullyAuthoritarian
}

// IsHybridAuthoritarian reports whether a country is hybrid authoritarian
func IsHybridAuthoritarian(country string) bool {
	return Classify(country).Classification == HybridAuthoritarian
}

// FullyAuthoritarianCountries returns every fully authoritarian country name, including aliases
func FullyAuthoritarianCountries() []string {
	var out []string
	for _, s := range fullySets {
		out = append(out, s.countries...)
	}
	return out
}

// HybridAuthoritarianCountries returns every hybrid authoritarian country name, including aliases
func HybridAuthoritarianCountries() []string {
	var out []string
	for _, s := range hybridSets {
		out = append(out, s.countries...)
	}
	return out
}

// AuthoritarianCountries returns hybrid and fully authoritarian country names
func AuthoritarianCountries() []string {
	return append(HybridAuthoritarianCountries(), FullyAuthoritarianCountries()...)
}

// KnownLeaders returns the ordered list of authoritarian leaders
func KnownLeaders() []string {
	out := make([]string, len(knownLeaders))
	copy(out, knownLeaders)
	return out
}

// KnownEntities returns the list of authoritarian organizations
func KnownEntities() []string {
	out := make([]string, len(knownEntities))
	copy(out, knownEntities)
	return out
}
