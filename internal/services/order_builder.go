package services

import (
	"context"
	"fmt"
	"math"
	"regexp"

	"fwc_backend/internal/models"
	"fwc_backend/internal/pdf"

	"github.com/shopspring/decimal"
)

var refIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// LineItemRequest is a raw line item as submitted by the client.
type LineItemRequest struct {
	ID          uint    `json:"id"`
	ProductType string  `json:"product_type"`
	ProductName string  `json:"productname"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Quantity    int     `json:"quantity"`
	Per         string  `json:"per"`
}

// BuildRequest is the raw order payload before validation. A party is
// given either by customer id or by the direct fields, never both ways
// at once.
type BuildRequest struct {
	RefID        string
	CustomerID   *uint
	CustomerType string
	CustomerName string
	Address      string
	MobileNumber string
	Email        string
	District     string
	State        string

	Items []LineItemRequest

	NetRate            float64
	YouSave            float64
	PromoDiscount      float64
	AdditionalDiscount float64
	Total              float64
}

// OrderDraft is a validated, catalog-enriched order ready for
// persistence and rendering.
type OrderDraft struct {
	RefID string
	Party models.PartySnapshot
	Items []models.LineItem

	NetRate            float64
	YouSave            float64
	PromoDiscount      float64
	AdditionalDiscount float64
	Total              float64

	// ComputedTotal is the sum of per-line discounted totals, kept
	// alongside the client-declared Total for auditing.
	ComputedTotal float64
}

type OrderBuilder interface {
	Build(ctx context.Context, kind models.OrderKind, req BuildRequest) (*OrderDraft, error)
	// BuildItems validates and enriches a replacement item set on its
	// own, for order updates that patch items without the rest.
	BuildItems(ctx context.Context, items []LineItemRequest) ([]models.LineItem, error)
}

type orderBuilder struct {
	catalog CatalogService
	party   PartyService
}

func NewOrderBuilder(catalog CatalogService, party PartyService) OrderBuilder {
	return &orderBuilder{catalog: catalog, party: party}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (b *orderBuilder) Build(ctx context.Context, kind models.OrderKind, req BuildRequest) (*OrderDraft, error) {
	idLabel := "order"
	if kind == models.KindQuotation {
		idLabel = "quotation"
	}
	if !refIDPattern.MatchString(req.RefID) {
		return nil, fmt.Errorf("%w: invalid or missing %s id", models.ErrValidation, idLabel)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", models.ErrValidation)
	}
	if !finite(req.NetRate, req.YouSave, req.PromoDiscount, req.AdditionalDiscount, req.Total) {
		return nil, fmt.Errorf("%w: monetary fields must be finite numbers", models.ErrValidation)
	}
	if req.NetRate < 0 || req.YouSave < 0 || req.PromoDiscount < 0 || req.AdditionalDiscount < 0 {
		return nil, fmt.Errorf("%w: monetary fields must be non-negative", models.ErrValidation)
	}
	if req.Total <= 0 {
		return nil, fmt.Errorf("%w: total must be greater than zero", models.ErrValidation)
	}

	party, err := b.resolveParty(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := b.BuildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	computed := decimal.Zero
	for _, item := range items {
		computed = computed.Add(pdf.LineTotal(item.Price, item.Discount, item.Quantity))
	}
	total, _ := computed.Float64()

	return &OrderDraft{
		RefID:              req.RefID,
		Party:              party,
		Items:              items,
		NetRate:            req.NetRate,
		YouSave:            req.YouSave,
		PromoDiscount:      req.PromoDiscount,
		AdditionalDiscount: req.AdditionalDiscount,
		Total:              req.Total,
		ComputedTotal:      total,
	}, nil
}

func (b *orderBuilder) resolveParty(ctx context.Context, req BuildRequest) (models.PartySnapshot, error) {
	if req.CustomerID != nil {
		return b.party.Resolve(ctx, *req.CustomerID, req.CustomerType)
	}

	// Direct party details are only accepted for walk-in users.
	if req.CustomerType != "" && req.CustomerType != string(models.TypeUser) {
		return models.PartySnapshot{}, fmt.Errorf("%w: customer_id is required for customer type %q", models.ErrValidation, req.CustomerType)
	}
	if req.CustomerName == "" || req.Address == "" || req.District == "" || req.State == "" || req.MobileNumber == "" {
		return models.PartySnapshot{}, fmt.Errorf("%w: customer details are incomplete", models.ErrValidation)
	}
	return models.PartySnapshot{
		CustomerName: req.CustomerName,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		District:     req.District,
		State:        req.State,
		CustomerType: string(models.TypeUser),
	}, nil
}

func (b *orderBuilder) BuildItems(ctx context.Context, items []LineItemRequest) ([]models.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", models.ErrValidation)
	}

	built := make([]models.LineItem, 0, len(items))
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d: quantity must be at least 1", models.ErrValidation, i+1)
		}
		if !finite(item.Price, item.Discount) || item.Price < 0 || item.Discount < 0 {
			return nil, fmt.Errorf("%w: item %d: price and discount must be non-negative finite numbers", models.ErrValidation, i+1)
		}
		if item.ProductType == "" {
			return nil, fmt.Errorf("%w: item %d: product_type is required", models.ErrValidation, i+1)
		}

		line := models.LineItem{
			Position:    i,
			ProductID:   item.ID,
			ProductType: item.ProductType,
			ProductName: item.ProductName,
			Price:       item.Price,
			Discount:    item.Discount,
			Quantity:    item.Quantity,
			Per:         item.Per,
		}

		if item.ProductType == models.ProductTypeCustom {
			if item.ProductName == "" {
				return nil, fmt.Errorf("%w: item %d: custom items need a product name", models.ErrValidation, i+1)
			}
		} else {
			if item.ID == 0 {
				return nil, fmt.Errorf("%w: item %d: product id is required", models.ErrValidation, i+1)
			}
			entry, err := b.catalog.Lookup(ctx, item.ProductType, item.ID)
			if err != nil {
				return nil, err
			}
			if entry.Status != "on" {
				return nil, fmt.Errorf("%w: product %d of type %s", models.ErrNotFound, item.ID, item.ProductType)
			}
			if line.ProductName == "" {
				line.ProductName = entry.ProductName
			}
			line.Per = entry.Per
		}

		built = append(built, line)
	}
	return built, nil
}
