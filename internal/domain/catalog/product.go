package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidTitle      = errors.New("product title must be between 5 and 100 characters")
	ErrNegativeStock     = errors.New("product stock cannot be negative")
	ErrNegativePrice     = errors.New("product price cannot be negative")
	ErrMissingCategory   = errors.New("product category is required")
	ErrCategoryNameShort = errors.New("category name must be at least 3 characters")
	ErrEmptyComment      = errors.New("comment message cannot be empty")
)

const (
	minTitleLength = 5
	maxTitleLength = 100
)

// Product is a sellable item. Price is in whole currency units.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Images      []string  `json:"images" bson:"images"`
	CategoryID  string    `json:"category" bson:"category"`
	Stock       int       `json:"stock" bson:"stock"`
	Price       int64     `json:"price" bson:"price"`
	CommentIDs  []string  `json:"comment" bson:"comment"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductDraft carries the client-controlled product fields.
type ProductDraft struct {
	Title       string
	Description string
	Images      []string
	CategoryID  string
	Stock       int
	Price       int64
}

func (d ProductDraft) validate() error {
	n := len([]rune(strings.TrimSpace(d.Title)))
	if n < minTitleLength || n > maxTitleLength {
		return ErrInvalidTitle
	}
	if d.Stock < 0 {
		return ErrNegativeStock
	}
	if d.Price < 0 {
		return ErrNegativePrice
	}
	if strings.TrimSpace(d.CategoryID) == "" {
		return ErrMissingCategory
	}
	return nil
}

// NewProduct validates the draft and assigns a fresh id.
func NewProduct(d ProductDraft) (*Product, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &Product{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Images:      images,
		CategoryID:  d.CategoryID,
		Stock:       d.Stock,
		Price:       d.Price,
		CommentIDs:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply replaces the mutable product fields. Comments are untouched.
func (p *Product) Apply(d ProductDraft) error {
	if err := d.validate(); err != nil {
		return err
	}
	p.Title = strings.TrimSpace(d.Title)
	p.Description = d.Description
	if d.Images != nil {
		p.Images = d.Images
	}
	p.CategoryID = d.CategoryID
	p.Stock = d.Stock
	p.Price = d.Price
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Category groups products
type Category struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewCategory validates and creates a category
func NewCategory(name, image string) (*Category, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 3 {
		return nil, ErrCategoryNameShort
	}
	return &Category{
		ID:        uuid.NewString(),
		Name:      name,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Comment is a user remark attached to a product. Name is the author's
// username at the time of writing.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	ProductID string    `json:"product" bson:"product"`
	Name      string    `json:"name" bson:"name"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewComment creates a comment authored by name on a product
func NewComment(productID, name, message string) (*Comment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyComment
	}
	return &Comment{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      name,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}, nil
}
