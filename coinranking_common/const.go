package coinranking_common

const (
	// API key header expected by CoinRanking
	API_KEY_HEADER = "x-access-token"

	// Envelope status value of a successful response
	STATUS_SUCCESS = "success"
)
