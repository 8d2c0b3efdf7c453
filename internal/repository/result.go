package repository

import (
	"github.com/sytallax/pizzaparser/internal/domain/models"
)

type StoreMeta struct {
	ID         int    `json:"id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode int    `json:"postal_code,omitempty"`
	Available  bool   `json:"available"`
}

func StoreMetaFrom(s models.Store) StoreMeta {
	return StoreMeta{
		ID:         s.ID,
		Street:     s.Address.Street,
		City:       s.Address.City,
		Region:     s.Address.Region,
		PostalCode: s.Address.PostalCode,
		Available:  s.IsAvailable,
	}
}

type StoresResult struct {
	FetchedAt string      `json:"fetched_at"`
	Pickup    string      `json:"pickup,omitempty"`
	Stores    []StoreMeta `json:"stores"`
	Count     int         `json:"count"`
}

type MenuCounts struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	LineItems  int `json:"line_items"`
	Coupons    int `json:"coupons"`
}

func CountsFor(m models.Menu) MenuCounts {
	return MenuCounts{
		Categories: len(m.Categories),
		Products:   len(m.Products),
		LineItems:  len(m.LineItems),
		Coupons:    len(m.Coupons),
	}
}

type MenuResult struct {
	FetchedAt  string                `json:"fetched_at"`
	Store      *StoreMeta            `json:"store,omitempty"`
	Categories []models.MenuCategory `json:"categories"`
	Products   []models.MenuProduct  `json:"products"`
	LineItems  []models.MenuLineItem `json:"line_items"`
	Coupons    []models.MenuCoupon   `json:"coupons"`
	Counts     MenuCounts            `json:"counts"`
}
