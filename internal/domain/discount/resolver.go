package discount

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/poloedu/polobill/internal/types"
)

// Source is one entry point that may carry discount intent. Lookup returns
// nil when the source carries none. Sources evolved independently (API
// payload, legacy installment config, raw form input, gateway echo), so
// resolution is an explicit precedence list rather than inline fallbacks.
type Source interface {
	Name() string
	Lookup() *Discount
}

// Resolve walks the sources in order and returns the first discount with a
// positive value together with the name of the source that won. Later
// sources are ignored once a match is found; nil means no discount applies.
func Resolve(sources ...Source) (*Discount, string) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		d := src.Lookup()
		if d != nil && d.Value.GreaterThan(decimal.Zero) {
			return d, src.Name()
		}
	}
	return nil, ""
}

// requestSource is the primary structured discount object from the request.
type requestSource struct {
	discount *Discount
}

func FromRequest(d *Discount) Source {
	return requestSource{discount: d}
}

func (s requestSource) Name() string { return "request" }

func (s requestSource) Lookup() *Discount {
	return s.discount
}

// configSource is the secondary value carried by a legacy installment
// configuration object. It only knows a value and an optional type.
type configSource struct {
	value        *decimal.Decimal
	discountType types.DiscountType
}

func FromInstallmentConfig(value *decimal.Decimal, discountType types.DiscountType) Source {
	return configSource{value: value, discountType: discountType}
}

func (s configSource) Name() string { return "installment_config" }

func (s configSource) Lookup() *Discount {
	if s.value == nil {
		return nil
	}
	dt := s.discountType
	if dt == "" {
		dt = types.DiscountTypeFixed
	}
	return &Discount{Type: dt, Value: *s.value}
}

// formSource is raw form input: an enabled flag plus free-text value and
// type fields. Only honoured when the flag is truthy and the value parses
// to a positive number.
type formSource struct {
	enabled  string
	rawValue string
	rawType  string
}

func FromForm(enabled, rawValue, rawType string) Source {
	return formSource{enabled: enabled, rawValue: rawValue, rawType: rawType}
}

func (s formSource) Name() string { return "form" }

func (s formSource) Lookup() *Discount {
	if !isTruthy(s.enabled) {
		return nil
	}
	value, err := decimal.NewFromString(strings.TrimSpace(s.rawValue))
	if err != nil {
		return nil
	}

	dt := types.DiscountTypeFixed
	if strings.EqualFold(strings.TrimSpace(s.rawType), string(types.DiscountTypePercentage)) {
		dt = types.DiscountTypePercentage
	}
	return &Discount{Type: dt, Value: value}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return false
}

// gatewayEchoSource is a discount echoed back by a prior gateway response.
// Lowest priority: it only applies when nothing upstream carried intent.
type gatewayEchoSource struct {
	value        decimal.Decimal
	discountType types.DiscountType
}

func FromGatewayEcho(value decimal.Decimal, discountType types.DiscountType) Source {
	return gatewayEchoSource{value: value, discountType: discountType}
}

func (s gatewayEchoSource) Name() string { return "gateway_echo" }

func (s gatewayEchoSource) Lookup() *Discount {
	if s.value.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	dt := s.discountType
	if dt == "" {
		dt = types.DiscountTypeFixed
	}
	return &Discount{Type: dt, Value: s.value}
}
