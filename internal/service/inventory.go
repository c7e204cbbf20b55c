package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/logger"
	"civdef-inventory-backend/internal/repository"
)

var (
	ErrInvalidCategory        = errors.New("unknown item category")
	ErrInvalidObservationType = errors.New("unknown observation type")
	ErrNegativeQuantity       = errors.New("quantity cannot be negative")
)

type inventoryService struct {
	itemRepo repository.ItemRepository
}

func NewInventoryService(itemRepo repository.ItemRepository) InventoryService {
	return &inventoryService{itemRepo: itemRepo}
}

func (s *inventoryService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		// Degrade to an empty inventory on read failure.
		logger.Error("Failed to list items", "error", err)
		return []domain.Item{}, nil
	}
	for i := range items {
		obs, err := s.itemRepo.ListObservations(ctx, items[i].ID)
		if err != nil {
			logger.Warn("Failed to list observations", "item_id", items[i].ID, "error", err)
			continue
		}
		items[i].Observations = obs
	}
	return items, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id int32) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	obs, err := s.itemRepo.ListObservations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	item.Observations = obs
	return item, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, item *domain.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.itemRepo.Create(ctx, item)
}

func (s *inventoryService) UpdateItem(ctx context.Context, item *domain.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.itemRepo.Update(ctx, item)
}

func validateItem(item *domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("item name is required")
	}
	if !item.Category.Valid() {
		return ErrInvalidCategory
	}
	if item.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

func (s *inventoryService) AddObservation(ctx context.Context, actor domain.Actor, itemID int32, obs *domain.Observation) error {
	if !obs.Type.Valid() {
		return ErrInvalidObservationType
	}
	if strings.TrimSpace(obs.Text) == "" {
		return errors.New("observation text is required")
	}
	if obs.Author == "" {
		obs.Author = actor.Name
	}
	obs.ItemID = itemID
	return s.itemRepo.CreateObservation(ctx, obs)
}

func (s *inventoryService) DeleteObservation(ctx context.Context, actor domain.Actor, itemID, obsID int32) error {
	if actor.Role != domain.RoleAdmin {
		return ErrNotAuthorized
	}
	return s.itemRepo.DeleteObservation(ctx, itemID, obsID)
}
