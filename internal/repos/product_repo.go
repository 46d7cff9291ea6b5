package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"sutradhar/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// catalogRow flattens the product columns with the joined seller columns.
type catalogRow struct {
	domain.Product
	ShopName      string  `db:"shop_name"`
	Region        string  `db:"region"`
	Rating        float64 `db:"rating"`
	VerifiedBadge bool    `db:"verified_badge"`
}

func (r catalogRow) toCatalog() domain.CatalogProduct {
	p := r.Product
	_ = json.Unmarshal([]byte(p.PhotosJSON), &p.Photos)
	_ = json.Unmarshal([]byte(p.TagsJSON), &p.Tags)
	return domain.CatalogProduct{
		Product: p,
		Seller: domain.SellerInfo{
			ID:            p.SellerID,
			ShopName:      r.ShopName,
			Region:        r.Region,
			Rating:        r.Rating,
			VerifiedBadge: r.VerifiedBadge,
		},
	}
}

const catalogSelect = `
  SELECT
    p.id, p.seller_id, p.title, p.description, p.price, p.stock,
    p.photos_json, p.tags_json, p.eco_badge, p.cultural_badge,
    p.story_text, p.story_audio_url, p.story_language, p.published,
    p.created_at, COALESCE(p.updated_at,'') AS updated_at,
    s.shop_name, s.region, s.rating, s.verified_badge
  FROM products p
  JOIN sellers s ON s.id = p.seller_id`

// ListPublished returns all published products with seller info, newest first.
func (r *ProductRepo) ListPublished() ([]domain.CatalogProduct, error) {
	var rows []catalogRow
	err := r.db.Select(&rows, catalogSelect+`
	  WHERE p.published = 1
	  ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCatalog())
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.CatalogProduct, error) {
	var row catalogRow
	if err := r.db.Get(&row, catalogSelect+` WHERE p.id = ?`, id); err != nil {
		return domain.CatalogProduct{}, err
	}
	return row.toCatalog(), nil
}

// ListBySeller returns a seller's products, published or not, newest first.
func (r *ProductRepo) ListBySeller(sellerID string) ([]domain.CatalogProduct, error) {
	var rows []catalogRow
	err := r.db.Select(&rows, catalogSelect+`
	  WHERE p.seller_id = ?
	  ORDER BY p.created_at DESC, p.id DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCatalog())
	}
	return out, nil
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,seller_id,title,description,price,stock,photos_json,tags_json,
	    eco_badge,cultural_badge,story_text,story_audio_url,story_language,published,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.SellerID, p.Title, p.Description, p.Price, p.Stock, p.PhotosJSON, p.TagsJSON,
		p.EcoBadge, p.CulturalBadge, p.StoryText, p.StoryAudioURL, p.StoryLanguage, p.Published)
	return err
}

// Update rewrites the seller-editable columns of an existing product.
func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET
	    title=?, description=?, price=?, stock=?, photos_json=?, tags_json=?,
	    eco_badge=?, cultural_badge=?, story_text=?, story_audio_url=?,
	    story_language=?, published=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND seller_id=?
	`, p.Title, p.Description, p.Price, p.Stock, p.PhotosJSON, p.TagsJSON,
		p.EcoBadge, p.CulturalBadge, p.StoryText, p.StoryAudioURL,
		p.StoryLanguage, p.Published, p.ID, p.SellerID)
	return err
}
