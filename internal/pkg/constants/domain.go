package constants

const (
	// DefaultGrantRatePerPoint is the Statsbidrag paid per YH point, in SEK.
	DefaultGrantRatePerPoint = 7000

	// DefaultFuzzyFloor is the minimum similarity accepted by the region matcher.
	DefaultFuzzyFloor = 0.6

	// MultipleMunicipalities is the placeholder used for courses given in several municipalities.
	MultipleMunicipalities = `Se "Lista flera kommuner"`

	StudentGenderTotal = "totalt"
	StudentPaceTotal   = "Totalt"
	StudentAllRegions  = "Samtliga län"

	DefaultTopN = 10

	CtxKeyRequestID = ctxKey("request_id")
	HeaderRequestID = "X-Request-ID"
)

type ctxKey string
