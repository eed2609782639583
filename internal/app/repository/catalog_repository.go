package repository

import (
	"strings"
	"time"

	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// CatalogFilter is the recognized set of optional catalog constraints. Zero
// values mean "no constraint".
type CatalogFilter struct {
	ID          *uint
	NamePattern string
	Size        string
	Tag         string
	Season      string
	Page        int
	PageSize    int
}

// PricedProduct is a catalog row: the product plus its aggregated stock, tag
// names and the discounted price in effect right now.
type PricedProduct struct {
	model.Product
	StockTotal      int      `gorm:"column:stock_total" json:"stock_total"`
	Tags            []string `gorm:"-" json:"tags"`
	EffectivePrice  float64  `gorm:"-" json:"effective_price"`
	DiscountPercent float64  `gorm:"-" json:"discount_percent"`
	ActiveEvent     string   `gorm:"-" json:"active_event,omitempty"`
}

type CatalogRepository interface {
	Select(filter CatalogFilter) ([]PricedProduct, error)
	FindVariants(productID uint) ([]model.Variant, error)
	IncrementViewCount(productID uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// Select runs the dynamic catalog query. Soft-deleted products are always
// excluded (gorm's DeletedAt hook on the Product model). Joins added by the
// size and tag filters fan rows out, so the query collapses back to one row
// per product before paging. Regardless of how many products match, the whole
// operation issues a fixed number of queries: the filtered aggregate, the tag
// names and the in-window price rules for the returned page.
func (r *catalogRepository) Select(filter CatalogFilter) ([]PricedProduct, error) {
	logger.Debug("Selecting catalog products", map[string]interface{}{
		"id":           filter.ID,
		"name_pattern": filter.NamePattern,
		"size":         filter.Size,
		"tag":          filter.Tag,
		"season":       filter.Season,
		"page":         filter.Page,
		"page_size":    filter.PageSize,
	})

	now := time.Now()

	stockTotals := r.db.Table("variants").
		Select("variants.product_id, SUM(variants.stock) AS total").
		Group("variants.product_id")

	query := r.db.Model(&model.Product{}).
		Select("products.*, COALESCE(stock_totals.total, 0) AS stock_total").
		Joins("LEFT JOIN (?) AS stock_totals ON stock_totals.product_id = products.id", stockTotals)

	if filter.ID != nil {
		query = query.Where("products.id = ?", *filter.ID)
	}

	if filter.NamePattern != "" {
		pattern := "%" + strings.ToLower(filter.NamePattern) + "%"
		query = query.Where("LOWER(products.name) LIKE ?", pattern)
	}

	if filter.Size != "" {
		query = query.
			Joins("JOIN variants AS sized_variants ON sized_variants.product_id = products.id").
			Where("sized_variants.size = ?", filter.Size)
	}

	if filter.Tag != "" {
		query = query.
			Joins("JOIN product_tags AS filter_product_tags ON filter_product_tags.product_id = products.id").
			Joins("JOIN tags AS filter_tags ON filter_tags.id = filter_product_tags.tag_id").
			Where("filter_tags.name = ?", filter.Tag)
	}

	if filter.Season != "" {
		// Season-neutral products show up under every seasonal filter.
		query = query.Where("(products.season = ? OR products.season = ?)", filter.Season, model.SeasonNeutral)
	}

	query = query.
		Group("products.id, stock_totals.total").
		Order("products.id DESC")

	// A single-id lookup bypasses paging entirely.
	if filter.ID == nil {
		page := filter.Page
		if page < 1 {
			page = DefaultPage
		}
		pageSize := filter.PageSize
		if pageSize < 1 {
			pageSize = DefaultPageSize
		}
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	var products []PricedProduct
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to select catalog products", err, map[string]interface{}{
			"name_pattern": filter.NamePattern,
			"tag":          filter.Tag,
			"season":       filter.Season,
		})
		return nil, err
	}

	if len(products) == 0 {
		return []PricedProduct{}, nil
	}

	ids := make([]uint, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}

	tagsByProduct, err := r.loadTagNames(ids)
	if err != nil {
		return nil, err
	}

	rulesByProduct, err := r.loadActiveRules(ids, now)
	if err != nil {
		return nil, err
	}

	for i := range products {
		p := &products[i]
		p.Tags = tagsByProduct[p.ID]
		if p.Tags == nil {
			p.Tags = []string{}
		}
		p.EffectivePrice = p.BasePrice
		if rule, ok := rulesByProduct[p.ID]; ok {
			p.DiscountPercent = rule.DiscountPercent
			p.ActiveEvent = rule.EventName
			p.EffectivePrice = p.BasePrice * (1 - rule.DiscountPercent/100)
		}
	}

	logger.Debug("Catalog products selected", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

// loadTagNames returns the deduplicated tag names per product.
func (r *catalogRepository) loadTagNames(productIDs []uint) (map[uint][]string, error) {
	type tagRow struct {
		ProductID uint
		Name      string
	}

	var rows []tagRow
	if err := r.db.Table("product_tags").
		Select("product_tags.product_id, tags.name").
		Joins("JOIN tags ON tags.id = product_tags.tag_id").
		Where("product_tags.product_id IN ?", productIDs).
		Where("tags.deleted_at IS NULL").
		Order("tags.name ASC").
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to load product tags", err, nil)
		return nil, err
	}

	result := make(map[uint][]string, len(productIDs))
	for _, row := range rows {
		result[row.ProductID] = append(result[row.ProductID], row.Name)
	}
	return result, nil
}

type activeRule struct {
	ProductID       uint
	RuleID          uint
	EventName       string
	DiscountPercent float64
}

// loadActiveRules resolves, per product, the single rule carrying the largest
// in-window discount. Rows arrive ordered by discount DESC then rule id ASC,
// so on an exact percentage tie the lowest rule id wins.
func (r *catalogRepository) loadActiveRules(productIDs []uint, now time.Time) (map[uint]activeRule, error) {
	var rows []activeRule
	if err := r.db.Table("price_rules").
		Select("product_tags.product_id, price_rules.id AS rule_id, price_rules.event_name, price_rules.discount_percent").
		Joins("JOIN product_tags ON product_tags.tag_id = price_rules.tag_id").
		Where("product_tags.product_id IN ?", productIDs).
		Where("price_rules.deleted_at IS NULL").
		Where("price_rules.active = ?", true).
		Where("(price_rules.starts_at IS NULL OR price_rules.starts_at <= ?)", now).
		Where("(price_rules.ends_at IS NULL OR price_rules.ends_at >= ?)", now).
		Order("price_rules.discount_percent DESC, price_rules.id ASC").
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to load active price rules", err, nil)
		return nil, err
	}

	best := make(map[uint]activeRule, len(productIDs))
	for _, row := range rows {
		if _, ok := best[row.ProductID]; !ok {
			best[row.ProductID] = row
		}
	}
	return best, nil
}

func (r *catalogRepository) FindVariants(productID uint) ([]model.Variant, error) {
	var variants []model.Variant
	if err := r.db.Where("product_id = ?", productID).
		Order("color ASC, size ASC").
		Find(&variants).Error; err != nil {
		logger.Error("Failed to find product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *catalogRepository) IncrementViewCount(productID uint) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", productID).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		logger.Error("Failed to increment product view count", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}
