package models

import "fmt"

// DataValidationError is the single domain error for malformed input,
// violated preconditions, and storage failures surfaced by the product
// store. Match it with errors.As.
type DataValidationError struct {
	Message string
	Cause   error
}

func (e *DataValidationError) Error() string { return e.Message }

func (e *DataValidationError) Unwrap() error { return e.Cause }

// NewDataValidationError creates a DataValidationError with the given message.
func NewDataValidationError(message string) *DataValidationError {
	return &DataValidationError{Message: message}
}

// WrapDataValidationError converts an underlying storage error into the
// domain error, keeping the cause for errors.Is/As chains.
func WrapDataValidationError(err error) *DataValidationError {
	return &DataValidationError{Message: err.Error(), Cause: err}
}

// Product represents a product in the catalog.
type Product struct {
	ID          uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"type:varchar(63);not null" validate:"required,max=63"`
	Description string   `json:"description" gorm:"type:varchar(255)" validate:"max=255"`
	Price       *float64 `json:"price"`
	Available   bool     `json:"available"`
}

// NewProduct creates an unsaved Product. Available defaults to true;
// the ID stays zero until the repository persists it.
func NewProduct() *Product {
	return &Product{Available: true}
}

func (p *Product) String() string {
	return fmt.Sprintf("<Product %s id=[%d]>", p.Name, p.ID)
}

// Serialize produces the wire mapping for a Product. The id is nil until
// the product has been persisted.
func (p *Product) Serialize() map[string]interface{} {
	var id interface{}
	if p.ID != 0 {
		id = p.ID
	}
	var price interface{}
	if p.Price != nil {
		price = *p.Price
	}
	return map[string]interface{}{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       price,
		"available":   p.Available,
	}
}

// Deserialize populates name, description, available and price from the
// given mapping. All four keys must be present; available must be a real
// boolean, never a string. The id is never read from the mapping.
func (p *Product) Deserialize(data map[string]interface{}) error {
	if data == nil {
		return NewDataValidationError("Invalid product: body of request contained bad or no data")
	}

	name, err := stringField(data, "name")
	if err != nil {
		return err
	}
	description, err := stringField(data, "description")
	if err != nil {
		return err
	}

	rawAvailable, ok := data["available"]
	if !ok {
		return NewDataValidationError("Invalid product: missing available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return NewDataValidationError(
			fmt.Sprintf("Invalid type for boolean [available]: %T", rawAvailable))
	}

	rawPrice, ok := data["price"]
	if !ok {
		return NewDataValidationError("Invalid product: missing price")
	}
	price, err := priceValue(rawPrice)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Available = available
	p.Price = price
	return nil
}

func stringField(data map[string]interface{}, key string) (string, error) {
	raw, ok := data[key]
	if !ok {
		return "", NewDataValidationError("Invalid product: missing " + key)
	}
	if raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", NewDataValidationError(
			fmt.Sprintf("Invalid type for string [%s]: %T", key, raw))
	}
	return value, nil
}

// priceValue accepts a JSON number or null. Decoded JSON numbers arrive
// as float64; integer literals from hand-built maps are accepted too.
func priceValue(raw interface{}) (*float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case int:
		f := float64(v)
		return &f, nil
	default:
		return nil, NewDataValidationError(
			fmt.Sprintf("Invalid type for number [price]: %T", raw))
	}
}
