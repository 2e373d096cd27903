package services

import "net/http"

// Jurisdiction codes returned by CheckJurisdiction.
const (
	JurisdictionGDPR    = "GDPR"
	JurisdictionCH      = "CH"
	JurisdictionBR      = "BR"
	JurisdictionPIPEDA  = "PIPEDA"
	JurisdictionAU      = "AU"
	JurisdictionAPPI    = "APPI"
	JurisdictionPIPA    = "PIPA"
	JurisdictionNone    = "NONE"
	JurisdictionUnknown = "UNKNOWN"
)

// JurisdictionResult is the banner decision for a detected country.
type JurisdictionResult struct {
	ShowBanner bool   `json:"show_banner"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// EU/EEA member states plus the UK, all subject to GDPR or its retained
// equivalent.
var gdprCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true,
	"IS": true, "LI": true, "NO": true,
	"GB": true,
}

var jurisdictionByCountry = map[string]JurisdictionResult{
	"CH": {ShowBanner: true, Code: JurisdictionCH, Message: "Switzerland requires consent under the revFADP"},
	"BR": {ShowBanner: true, Code: JurisdictionBR, Message: "Brazil requires consent under the LGPD"},
	"CA": {ShowBanner: true, Code: JurisdictionPIPEDA, Message: "Canada requires consent under PIPEDA"},
	"AU": {ShowBanner: true, Code: JurisdictionAU, Message: "Australia requires consent under the Privacy Act"},
	"JP": {ShowBanner: true, Code: JurisdictionAPPI, Message: "Japan requires consent under the APPI"},
	"KR": {ShowBanner: true, Code: JurisdictionPIPA, Message: "South Korea requires consent under PIPA"},
}

// CheckJurisdiction maps an ISO 3166-1 alpha-2 country code to a banner
// decision. An empty country means detection failed, so the banner is shown
// (fail-open) with code UNKNOWN.
func CheckJurisdiction(countryCode string) JurisdictionResult {
	if countryCode == "" {
		return JurisdictionResult{
			ShowBanner: true,
			Code:       JurisdictionUnknown,
			Message:    "Could not determine region, showing banner by default",
		}
	}
	if gdprCountries[countryCode] {
		return JurisdictionResult{
			ShowBanner: true,
			Code:       JurisdictionGDPR,
			Message:    "GDPR or equivalent regulations require a cookie banner",
		}
	}
	if res, ok := jurisdictionByCountry[countryCode]; ok {
		return res
	}
	return JurisdictionResult{
		ShowBanner: false,
		Code:       JurisdictionNone,
		Message:    "No specific consent requirements detected",
	}
}

// Geo headers set by common CDN/edge providers, in lookup order.
var countryHeaders = []string{
	"cf-ipcountry",
	"x-vercel-ip-country",
	"x-amz-cf-ipcountry",
	"x-country-code",
}

var regionHeaders = []string{
	"x-vercel-ip-country-region",
	"cf-region",
}

// ClientLocation extracts country and region codes from edge geo headers.
// Either value may be empty when no provider header is present.
func ClientLocation(h http.Header) (country, region string) {
	for _, name := range countryHeaders {
		if v := h.Get(name); v != "" {
			country = v
			break
		}
	}
	for _, name := range regionHeaders {
		if v := h.Get(name); v != "" {
			region = v
			break
		}
	}
	return country, region
}
