package invoice

import "strings"

// CompanyProfile is the issuing company shown in the FROM column.
type CompanyProfile struct {
	Name               string `yaml:"name"`
	RegistrationNumber string `yaml:"registration_number"`
	Address            string `yaml:"address"`
	Contact            string `yaml:"contact"`
	Email              string `yaml:"email"`
	Website            string `yaml:"website"`
	// Logo is a local path or data URL drawn in the title block when set.
	Logo string `yaml:"logo,omitempty"`
}

// ClientProfile is the party an invoice is billed to. Email and TaxID are optional.
type ClientProfile struct {
	Name         string `yaml:"name"`
	AddressLine1 string `yaml:"address_line1"`
	AddressLine2 string `yaml:"address_line2"`
	City         string `yaml:"city"`
	Country      string `yaml:"country"`
	PostalCode   string `yaml:"postal_code"`
	Email        string `yaml:"email,omitempty"`
	TaxID        string `yaml:"tax_id,omitempty"`
}

// IsZero reports whether no field of the profile is set.
func (c ClientProfile) IsZero() bool {
	return c == ClientProfile{}
}

// Locality joins city and country, skipping whichever is empty.
func (c ClientProfile) Locality() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{c.City, c.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// BankingProfile holds the payee account printed on the banking page.
type BankingProfile struct {
	BankName      string `yaml:"bank_name"`
	AccountName   string `yaml:"account_name"`
	AccountNumber string `yaml:"account_number"`
	Branch        string `yaml:"branch"`
	BranchCode    string `yaml:"branch_code"`
	AccountType   string `yaml:"account_type"`
}

// SelectClient applies the bill-to precedence: explicit override, then the house
// client, then an empty profile.
func SelectClient(override, house *ClientProfile) ClientProfile {
	switch {
	case override != nil:
		return *override
	case house != nil:
		return *house
	default:
		return ClientProfile{}
	}
}
