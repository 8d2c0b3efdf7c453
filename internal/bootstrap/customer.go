package bootstrap

import (
	"fmt"

	"github.com/sytallax/pizzaparser/internal/config"
	"github.com/sytallax/pizzaparser/internal/domain/models"
)

func CustomerFromConfig(cfg config.CustomerConfig) (models.Customer, error) {
	addr := models.Address{
		Street:     cfg.Address.Street,
		City:       cfg.Address.City,
		Region:     cfg.Address.Region,
		PostalCode: cfg.Address.PostalCode,
	}
	if addr.Street == "" || addr.City == "" {
		return models.Customer{}, fmt.Errorf("customer.address needs at least street and city")
	}

	return models.Customer{
		FirstName:   cfg.FirstName,
		LastName:    cfg.LastName,
		Email:       cfg.Email,
		PhoneNumber: cfg.PhoneNumber,
		Address:     addr,
	}, nil
}
