// Package collections defines the record schema backing quotations and
// maps them to and from the in-memory ledger.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the quotations and
// quotation_items collections exist.
func Setup(app *pocketbase.PocketBase) {
	quotations := ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "party", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "sales_person", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate_discount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sp_discount", Required: false})
		c.Fields.Add(&core.TextField{Name: "total_discount_text", Required: false})
		c.Fields.Add(&core.TextField{Name: "bill_discount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "bill_discount_type",
			Required:  false,
			Values:    []string{"AMOUNT", "PERCENT"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "shipping", Required: false})
		c.Fields.Add(&core.TextField{Name: "advance", Required: false})
		c.Fields.Add(&core.TextField{Name: "remark", Required: false})
		c.Fields.Add(&core.TextField{Name: "payment_image", Required: false})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quotation_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "size", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pcs", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "pricing_mode",
			Required:  true,
			Values:    []string{"auto", "manual", "sample"},
			MaxSelect: 1,
		})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
