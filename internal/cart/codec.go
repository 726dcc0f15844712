package cart

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/rocketcart/internal/domain"
)

func encodeCart(cart domain.Cart) (string, error) {
	if cart == nil {
		cart = domain.Cart{}
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(data), nil
}

func decodeCart(value string) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal([]byte(value), &cart); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := cart.Validate(); err != nil {
		return nil, fmt.Errorf("cart.Validate: %w", err)
	}

	return cart.Clone(), nil
}
