package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON sub-fields of a venue are stored as JSON documents in a single column.
// Each type below is the only place that encodes or decodes its column.
// Unreadable stored values decode to the zero value rather than failing the row.

// StringList is an ordered list of strings (image URLs, amenities).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	raw, err := columnBytes(src)
	if err != nil {
		return err
	}
	var out []string
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil || out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// MarshalJSON keeps an unset list as [] on the wire.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

func (c Coordinates) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Coordinates) Scan(src interface{}) error {
	raw, err := columnBytes(src)
	if err != nil {
		return err
	}
	var out Coordinates
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	*c = out
	return nil
}

type PricingType string

const (
	PricingText  PricingType = "text"
	PricingImage PricingType = "image"
)

// Pricing is either free text or an image of a price list.
type Pricing struct {
	Type     PricingType `json:"type" yaml:"type"`
	Content  string      `json:"content" yaml:"content"`
	ImageURL string      `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Normalize fills the default variant so a stored block is always one of the two.
func (p Pricing) Normalize() Pricing {
	if p.Type != PricingImage {
		p.Type = PricingText
		p.ImageURL = ""
	}
	return p
}

func (p Pricing) Value() (driver.Value, error) {
	b, err := json.Marshal(p.Normalize())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Pricing) Scan(src interface{}) error {
	raw, err := columnBytes(src)
	if err != nil {
		return err
	}
	var out Pricing
	if len(raw) > 0 && json.Unmarshal(raw, &out) != nil {
		// legacy rows stored the text directly
		out = Pricing{Content: string(raw)}
	}
	*p = out.Normalize()
	return nil
}

func columnBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", src)
	}
}
