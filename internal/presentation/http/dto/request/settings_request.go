package request

// UpdateSettingsRequest represents a partial settings update. Omitted fields
// keep their stored value.
type UpdateSettingsRequest struct {
	Currency        *string  `json:"currency" binding:"omitempty,max=8"`
	TaxRate         *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`
	GSTEnabled      *bool    `json:"gstEnabled"`
	DiscountEnabled *bool    `json:"discountEnabled"`
	UPIID           *string  `json:"upiId"`
	PayeeName       *string  `json:"payeeName"`
	DarkMode        *bool    `json:"darkMode"`

	WhatsAppNumber     *string `json:"whatsappNumber"`
	WhatsAppAPIService *string `json:"whatsappApiService" binding:"omitempty,oneof=wasend custom"`
	WhatsAppAPIKey     *string `json:"whatsappApiKey"`
	WhatsAppAPIURL     *string `json:"whatsappApiUrl" binding:"omitempty,url"`
	AutoReportEnabled  *bool   `json:"autoReportEnabled"`
	ReportTime         *string `json:"reportTime" binding:"omitempty,len=5"`
}
