package pricing

import (
	"github.com/shopspring/decimal"
)

// DetailResult is the decoded cabin-pricing payload of the detail endpoint.
type DetailResult struct {
	Cabins []CabinVariant `json:"cabinItemsVariant"`
}

// CabinVariant carries the tariff sub-offers of one cabin category. The
// upstream payload uses one fixed field per tariff key.
type CabinVariant struct {
	CabinCode string `json:"cabinCode"`
	CabinName string `json:"cabinName"`

	Lig   *TariffOffer `json:"lig"`
	Cla   *TariffOffer `json:"cla"`
	ClaAl *TariffOffer `json:"claAl"`
	Ind   *TariffOffer `json:"ind"`
	IndAl *TariffOffer `json:"indAl"`
	ComAl *TariffOffer `json:"comAl"`
	Pau   *TariffOffer `json:"pau"`
	PauAl *TariffOffer `json:"pauAl"`
	See   *TariffOffer `json:"see"`
	SeeAl *TariffOffer `json:"seeAl"`
}

// Tariff resolves a tariff key to its sub-offer, nil when absent.
func (c *CabinVariant) Tariff(key string) *TariffOffer {
	switch key {
	case "lig":
		return c.Lig
	case "cla":
		return c.Cla
	case "claAl":
		return c.ClaAl
	case "ind":
		return c.Ind
	case "indAl":
		return c.IndAl
	case "comAl":
		return c.ComAl
	case "pau":
		return c.Pau
	case "pauAl":
		return c.PauAl
	case "see":
		return c.See
	case "seeAl":
		return c.SeeAl
	default:
		return nil
	}
}

type TariffOffer struct {
	Amount          *decimal.Decimal `json:"amount"`
	AmountPerPerson *decimal.Decimal `json:"amountPerPerson"`
	BookingLink     string           `json:"bookingLink"`
	Campaigns       []Campaign       `json:"campaigns"`
}

type Campaign struct {
	Validity CampaignValidity `json:"validity"`
}

type CampaignValidity struct {
	CurrentDate string `json:"currentDate"`
}

// HasPrice reports whether the tariff carries any usable amount.
func (t *TariffOffer) HasPrice() bool {
	return t != nil && (t.Amount != nil || t.AmountPerPerson != nil)
}
