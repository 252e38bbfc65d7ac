package utils

// Application constants
const (
	// Application name
	AppName = "Buy Me a Chai"

	// Default port
	DefaultPort = "5000"

	// Default currency for orders
	DefaultCurrency = "INR"

	// Default price of one chai in major currency units
	DefaultChaiPrice = 30

	// Minor currency units per major unit (paise per rupee)
	MinorUnitsPerMajor = 100

	// Maximum length of a single gateway order note value
	MaxGatewayNoteLength = 256

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "chai"

	// Default sqlite file for local runs
	DefaultSQLitePath = "chai.db"

	// Default directory for daily log files
	DefaultLogDir = "logs"

	// Default exchange for contribution events
	DefaultEventsExchange = "chai.events"
)
