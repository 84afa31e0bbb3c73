package property

import (
	"strings"

	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
)

// Buyer is the purchaser recorded against a unit
type Buyer struct {
	Name           string             `json:"name"`
	PassportNumber string             `json:"passportNumber"`
	PurchaseDate   string             `json:"purchaseDate"`
	InitialPayment valueobject.Amount `json:"initialPayment"`
	FirstPayment   valueobject.Amount `json:"firstPayment"`
	SecondPayment  valueobject.Amount `json:"secondPayment"`
	Phone          string             `json:"phone"`
	PassportFile   *Attachment        `json:"passportFile"`
}

// BuyerPatch merges into a Buyer field by field
type BuyerPatch struct {
	Name           shared.Optional[string]             `json:"name"`
	PassportNumber shared.Optional[string]             `json:"passportNumber"`
	PurchaseDate   shared.Optional[string]             `json:"purchaseDate"`
	InitialPayment shared.Optional[valueobject.Amount] `json:"initialPayment"`
	FirstPayment   shared.Optional[valueobject.Amount] `json:"firstPayment"`
	SecondPayment  shared.Optional[valueobject.Amount] `json:"secondPayment"`
	Phone          shared.Optional[string]             `json:"phone"`
	PassportFile   shared.Optional[*AttachmentInput]   `json:"passportFile"`
}

// Merge returns b with every field present in patch applied. A nil patch
// leaves b unchanged.
func (b Buyer) Merge(patch *BuyerPatch) (Buyer, error) {
	if patch == nil {
		return b, nil
	}
	file, err := mergeAttachment(b.PassportFile, patch.PassportFile)
	if err != nil {
		return b, err
	}

	b.Name = mergeText(b.Name, patch.Name)
	b.PassportNumber = mergeText(b.PassportNumber, patch.PassportNumber)
	b.PurchaseDate = mergeText(b.PurchaseDate, patch.PurchaseDate)
	b.InitialPayment = patch.InitialPayment.OrElse(b.InitialPayment)
	b.FirstPayment = patch.FirstPayment.OrElse(b.FirstPayment)
	b.SecondPayment = patch.SecondPayment.OrElse(b.SecondPayment)
	b.Phone = mergeText(b.Phone, patch.Phone)
	b.PassportFile = file
	return b, nil
}

// Contract holds the sales contract details of a unit
type Contract struct {
	Reference    string      `json:"reference"`
	Telephone    string      `json:"telephone"`
	DocumentFile *Attachment `json:"documentFile"`
}

// ContractPatch merges into a Contract field by field
type ContractPatch struct {
	Reference    shared.Optional[string]           `json:"reference"`
	Telephone    shared.Optional[string]           `json:"telephone"`
	DocumentFile shared.Optional[*AttachmentInput] `json:"documentFile"`
}

// Merge returns c with every field present in patch applied
func (c Contract) Merge(patch *ContractPatch) (Contract, error) {
	if patch == nil {
		return c, nil
	}
	file, err := mergeAttachment(c.DocumentFile, patch.DocumentFile)
	if err != nil {
		return c, err
	}

	c.Reference = mergeText(c.Reference, patch.Reference)
	c.Telephone = mergeText(c.Telephone, patch.Telephone)
	c.DocumentFile = file
	return c, nil
}

func mergeText(current string, v shared.Optional[string]) string {
	if !v.Set {
		return current
	}
	return strings.TrimSpace(v.Value)
}
