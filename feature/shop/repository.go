package shop

import (
	"context"
	"fmt"

	"shop-transformer/core/utils"

	"gorm.io/gorm"
)

// Repository reads shop records in ID-batched form. Every child fetcher
// takes a slice of customer ids and returns rows keyed by customer id, the
// shape the entity cache loads from.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over an open shop database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EntityIDs returns the distinct entity ids present in the customer table.
func (r *Repository) EntityIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&Customer{}).
		Distinct().
		Order("entityId").
		Pluck("entityId", &ids).Error
	return ids, err
}

// CustomerIDs returns the customer ids of one entity.
func (r *Repository) CustomerIDs(ctx context.Context, entityID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&Customer{}).
		Where("entityId = ?", entityID).
		Order("customerId").
		Pluck("customerId", &ids).Error
	return ids, err
}

// Customers fetches customer rows keyed by their own id, the parent key of
// every other table.
func (r *Repository) Customers(ctx context.Context, ids []int) (map[int][]Customer, error) {
	if len(ids) == 0 {
		return map[int][]Customer{}, nil
	}
	var rows []Customer
	if err := r.db.WithContext(ctx).Where("customerId IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return group(rows, func(c Customer) int { return c.CustomerID }), nil
}

// Units fetches the vehicles of the given customers.
func (r *Repository) Units(ctx context.Context, ids []int) (map[int][]Unit, error) {
	if len(ids) == 0 {
		return map[int][]Unit{}, nil
	}
	var rows []Unit
	if err := r.db.WithContext(ctx).Where("customerId IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return group(rows, func(u Unit) int { return u.CustomerID }), nil
}

// Addresses fetches the addresses of the given customers.
func (r *Repository) Addresses(ctx context.Context, ids []int) (map[int][]Address, error) {
	if len(ids) == 0 {
		return map[int][]Address{}, nil
	}
	var rows []Address
	if err := r.db.WithContext(ctx).Where("customerId IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return group(rows, func(a Address) int { return a.CustomerID }), nil
}

// Notes fetches the notes of the given customers.
func (r *Repository) Notes(ctx context.Context, ids []int) (map[int][]Note, error) {
	if len(ids) == 0 {
		return map[int][]Note{}, nil
	}
	var rows []Note
	if err := r.db.WithContext(ctx).Where("customerId IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return group(rows, func(n Note) int { return n.CustomerID }), nil
}

// History fetches the service history of the given customers.
func (r *Repository) History(ctx context.Context, ids []int) (map[int][]ServiceHistory, error) {
	if len(ids) == 0 {
		return map[int][]ServiceHistory{}, nil
	}
	var rows []ServiceHistory
	if err := r.db.WithContext(ctx).Where("customerId IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return group(rows, func(h ServiceHistory) int { return h.CustomerID }), nil
}

const partLineQuery = `SELECT shp.serviceHistoryPartId, shp.serviceHistoryId, sh.customerId,
	shp.title, shp.description, shp.partNumber, shp.vendorPartNumber,
	shp.quantity, shp.unitPrice
FROM ServiceHistoryPart shp
JOIN ServiceHistory sh ON sh.serviceHistoryId = shp.serviceHistoryId
WHERE sh.customerId IN ?`

// PartLines fetches the repair-order part usage of the given customers
// through the service-history join. The MySQL driver hands varchar and
// decimal columns back as []byte, so the rows are scanned loose and
// converted instead of forcing nullable struct fields.
func (r *Repository) PartLines(ctx context.Context, ids []int) (map[int][]PartLine, error) {
	if len(ids) == 0 {
		return map[int][]PartLine{}, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(partLineQuery, ids).Rows()
	if err != nil {
		return nil, fmt.Errorf("part line query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make(map[int][]PartLine)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("part line scan: %w", err)
		}

		rec := make(map[string]any, len(cols))
		for i, c := range cols {
			rec[c] = vals[i]
		}

		line := PartLine{
			PartLineID:       utils.ToInt(rec["serviceHistoryPartId"]),
			ServiceHistoryID: utils.ToInt(rec["serviceHistoryId"]),
			Title:            utils.ToString(rec["title"]),
			Description:      utils.ToString(rec["description"]),
			PartNumber:       utils.ToString(rec["partNumber"]),
			VendorPartNumber: utils.ToString(rec["vendorPartNumber"]),
			Quantity:         utils.ToFloat(rec["quantity"]),
			UnitPrice:        utils.ToFloat(rec["unitPrice"]),
			CustomerID:       utils.ToInt(rec["customerId"]),
		}
		out[line.CustomerID] = append(out[line.CustomerID], line)
	}
	return out, rows.Err()
}

// group keys fetched rows by customer id.
func group[T any](rows []T, key func(T) int) map[int][]T {
	out := make(map[int][]T, len(rows))
	for _, row := range rows {
		k := key(row)
		out[k] = append(out[k], row)
	}
	return out
}
