package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, category, quantity, available, COALESCE(description, ''), specifications, COALESCE(image_url, ''), COALESCE(manual_url, ''), COALESCE(usage_instructions, ''), created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, i *domain.Item) error {
	specs, err := json.Marshal(i.Specifications)
	if err != nil {
		return err
	}
	// Creation policy: available starts equal to quantity.
	i.Available = i.Quantity
	query := `INSERT INTO items (name, category, quantity, available, description, specifications, image_url, manual_url, usage_instructions, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, i.Name, i.Category, i.Quantity, i.Available, i.Description, specs, i.ImageURL, i.ManualURL, i.UsageInstructions, now, now).Scan(&i.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	i := &domain.Item{}
	var specs []byte
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&i.ID, &i.Name, &i.Category, &i.Quantity, &i.Available, &i.Description, &specs, &i.ImageURL, &i.ManualURL, &i.UsageInstructions, &i.CreatedOn, &i.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specs, &i.Specifications); err != nil {
		i.Specifications = map[string]string{}
	}
	return i, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name`
	return r.queryItems(ctx, query)
}

func (r *itemRepository) ListOutOfStock(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE available <= 0 ORDER BY name`
	return r.queryItems(ctx, query)
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var i domain.Item
		var specs []byte
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &i.Quantity, &i.Available, &i.Description, &specs, &i.ImageURL, &i.ManualURL, &i.UsageInstructions, &i.CreatedOn, &i.UpdatedOn); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(specs, &i.Specifications); err != nil {
			i.Specifications = map[string]string{}
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// Update replaces the mutable fields wholesale. Last write wins; an admin
// correction of quantity/available can race a request-driven adjustment.
func (r *itemRepository) Update(ctx context.Context, i *domain.Item) error {
	specs, err := json.Marshal(i.Specifications)
	if err != nil {
		return err
	}
	query := `UPDATE items SET name=$1, category=$2, quantity=$3, available=$4, description=$5, specifications=$6, image_url=$7, manual_url=$8, usage_instructions=$9, updated_on=$10 WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query, i.Name, i.Category, i.Quantity, i.Available, i.Description, specs, i.ImageURL, i.ManualURL, i.UsageInstructions, time.Now(), i.ID)
	return err
}

func (r *itemRepository) CreateObservation(ctx context.Context, o *domain.Observation) error {
	query := `INSERT INTO item_observations (item_id, observed_on, author, text, type)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if o.ObservedOn.IsZero() {
		o.ObservedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, o.ItemID, o.ObservedOn, o.Author, o.Text, o.Type).Scan(&o.ID)
}

func (r *itemRepository) ListObservations(ctx context.Context, itemID int32) ([]domain.Observation, error) {
	query := `SELECT id, item_id, observed_on, author, text, type FROM item_observations WHERE item_id = $1 ORDER BY observed_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obs []domain.Observation
	for rows.Next() {
		var o domain.Observation
		if err := rows.Scan(&o.ID, &o.ItemID, &o.ObservedOn, &o.Author, &o.Text, &o.Type); err != nil {
			return nil, err
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

func (r *itemRepository) DeleteObservation(ctx context.Context, itemID, obsID int32) error {
	query := `DELETE FROM item_observations WHERE id = $1 AND item_id = $2`
	res, err := r.db.ExecContext(ctx, query, obsID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
