// Package catalogrepo provides the postgres-backed catalog gateway.
// The catalog is owned by the merchant subsystem; this adapter reads priced
// menu item snapshots for cart additions and never writes.
package catalogrepo

import (
	"encoding/json"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure of one catalog item.
// Option groups are stored as a JSONB document; the catalog is read-heavy
// and the groups are only ever consumed whole.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID   uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	UnitPrice    int64
	OptionGroups []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// optionGroupDoc is the JSONB shape of one option group.
type optionGroupDoc struct {
	Name     string            `json:"name"`
	Required bool              `json:"required"`
	Choices  []optionChoiceDoc `json:"choices"`
}

// optionChoiceDoc is the JSONB shape of one option choice.
type optionChoiceDoc struct {
	Name      string `json:"name"`
	Surcharge int64  `json:"surcharge"`
}

// toDomain converts a database DTO to a menu item snapshot.
func toDomain(dto MenuItemDTO) (product.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return product.MenuItem{}, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return product.MenuItem{}, err
	}

	var docs []optionGroupDoc
	if len(dto.OptionGroups) > 0 {
		if err = json.Unmarshal(dto.OptionGroups, &docs); err != nil {
			return product.MenuItem{}, err
		}
	}

	groups := make([]product.OptionGroup, 0, len(docs))
	for _, doc := range docs {
		choices := make([]product.OptionChoice, 0, len(doc.Choices))
		for _, choiceDoc := range doc.Choices {
			choice, choiceErr := product.NewOptionChoice(choiceDoc.Name, kernel.NewMoney(choiceDoc.Surcharge))
			if choiceErr != nil {
				return product.MenuItem{}, choiceErr
			}
			choices = append(choices, choice)
		}

		group, groupErr := product.NewOptionGroup(doc.Name, doc.Required, choices)
		if groupErr != nil {
			return product.MenuItem{}, groupErr
		}
		groups = append(groups, group)
	}

	return product.NewMenuItem(id, merchantID, dto.Name, kernel.NewMoney(dto.UnitPrice), groups)
}
