package entity

// Settings is the singleton store configuration. Exactly one record exists
// after initialization; updates merge into it, never replace it destructively.
type Settings struct {
	Currency        string  `json:"currency"`
	TaxRate         float64 `json:"taxRate"`
	GSTEnabled      bool    `json:"gstEnabled"`
	DiscountEnabled bool    `json:"discountEnabled"`
	UPIID           string  `json:"upiId"`
	PayeeName       string  `json:"payeeName"`
	DarkMode        bool    `json:"darkMode"`

	WhatsAppNumber     string `json:"whatsappNumber"`
	WhatsAppAPIService string `json:"whatsappApiService"`
	WhatsAppAPIKey     string `json:"whatsappApiKey"`
	WhatsAppAPIURL     string `json:"whatsappApiUrl"`
	AutoReportEnabled  bool   `json:"autoReportEnabled"`
	ReportTime         string `json:"reportTime"`
}

// DefaultSettings returns the first-run configuration.
func DefaultSettings() Settings {
	return Settings{
		Currency:           "₹",
		TaxRate:            18,
		GSTEnabled:         true,
		DiscountEnabled:    true,
		UPIID:              "",
		PayeeName:          "Restaurant Name",
		DarkMode:           false,
		WhatsAppAPIService: "wasend",
		AutoReportEnabled:  false,
		ReportTime:         "22:00",
	}
}

// DefaultAdminPIN is seeded on first run and changed through the verified
// PIN-change flow. It is a convenience gate, not a security boundary.
const DefaultAdminPIN = "1234"
