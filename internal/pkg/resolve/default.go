package resolve

var defaultPairs = []Pair{
	{Municipality: "Stockholm", Region: "Stockholms län"},
	{Municipality: "Solna", Region: "Stockholms län"},
	{Municipality: "Södertälje", Region: "Stockholms län"},
	{Municipality: "Uppsala", Region: "Uppsala län"},
	{Municipality: "Eskilstuna", Region: "Södermanlands län"},
	{Municipality: "Nyköping", Region: "Södermanlands län"},
	{Municipality: "Linköping", Region: "Östergötlands län"},
	{Municipality: "Norrköping", Region: "Östergötlands län"},
	{Municipality: "Jönköping", Region: "Jönköpings län"},
	{Municipality: "Växjö", Region: "Kronobergs län"},
	{Municipality: "Kalmar", Region: "Kalmar län"},
	{Municipality: "Gotland", Region: "Gotlands län"},
	{Municipality: "Karlskrona", Region: "Blekinge län"},
	{Municipality: "Malmö", Region: "Skåne län"},
	{Municipality: "Helsingborg", Region: "Skåne län"},
	{Municipality: "Lund", Region: "Skåne län"},
	{Municipality: "Kristianstad", Region: "Skåne län"},
	{Municipality: "Halmstad", Region: "Hallands län"},
	{Municipality: "Göteborg", Region: "Västra Götalands län"},
	{Municipality: "Borås", Region: "Västra Götalands län"},
	{Municipality: "Trollhättan", Region: "Västra Götalands län"},
	{Municipality: "Skövde", Region: "Västra Götalands län"},
	{Municipality: "Karlstad", Region: "Värmlands län"},
	{Municipality: "Örebro", Region: "Örebro län"},
	{Municipality: "Västerås", Region: "Västmanlands län"},
	{Municipality: "Falun", Region: "Dalarnas län"},
	{Municipality: "Borlänge", Region: "Dalarnas län"},
	{Municipality: "Gävle", Region: "Gävleborgs län"},
	{Municipality: "Sundsvall", Region: "Västernorrlands län"},
	{Municipality: "Östersund", Region: "Jämtlands län"},
	{Municipality: "Umeå", Region: "Västerbottens län"},
	{Municipality: "Skellefteå", Region: "Västerbottens län"},
	{Municipality: "Luleå", Region: "Norrbottens län"},
}

// DefaultTable returns a fresh copy of the built-in mapping.
func DefaultTable() *Table {
	pairs := make([]Pair, len(defaultPairs))
	copy(pairs, defaultPairs)
	t, err := NewTable(pairs)
	if err != nil {
		panic(err)
	}
	return t
}
