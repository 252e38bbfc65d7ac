package controllers

import (
	"time"

	"github.com/Govind-619/BuyMeAChai/repository"
	"github.com/Govind-619/BuyMeAChai/services"
)

// Settings carries the values controllers need besides their services
type Settings struct {
	// KeySecret signs simulated payments; it is never sent to clients
	// except through the development-only simulator.
	KeySecret string
	ChaiPrice int64
}

// ChaiController serves the chai purchase and message wall endpoints
type ChaiController struct {
	orders        *services.OrderService
	confirmations *services.ConfirmationService
	store         repository.ContributionStore
	settings      Settings
	now           func() time.Time
}

// NewChaiController wires the controller to its services
func NewChaiController(orders *services.OrderService, confirmations *services.ConfirmationService, store repository.ContributionStore, settings Settings) *ChaiController {
	return &ChaiController{
		orders:        orders,
		confirmations: confirmations,
		store:         store,
		settings:      settings,
		now:           time.Now,
	}
}
