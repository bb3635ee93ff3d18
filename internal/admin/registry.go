package admin

import (
	"sort"

	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
)

const (
	EntityCategories = "categories"
	EntityProducts   = "products"
	EntityVariants   = "variants"
)

// Fieldset groups fields on the edit form.
type Fieldset struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Inline edits child rows on the parent's form.
type Inline struct {
	Entity         string   `json:"entity"`
	Fields         []string `json:"fields"`
	Extra          int      `json:"extra"`
	ShowChangeLink bool     `json:"show_change_link"`
}

// EntityConfig is the console configuration of one entity.
type EntityConfig struct {
	Name         string              `json:"name"`
	Title        string              `json:"title"`
	ListDisplay  []string            `json:"list_display"`
	ListFilters  []string            `json:"list_filters"`
	SearchFields []string            `json:"search_fields"`
	Prepopulated map[string][]string `json:"prepopulated_fields,omitempty"`
	Fieldsets    []Fieldset          `json:"fieldsets,omitempty"`
	Inlines      []Inline            `json:"inlines,omitempty"`
}

// AllowsFilter reports whether field is one of the configured list filters.
func (c EntityConfig) AllowsFilter(field string) bool {
	for _, f := range c.ListFilters {
		if f == field {
			return true
		}
	}
	return false
}

// Registry holds the configured entities.
type Registry struct {
	entities map[string]EntityConfig
}

func NewRegistry(configs ...EntityConfig) *Registry {
	r := &Registry{entities: make(map[string]EntityConfig, len(configs))}
	for _, c := range configs {
		r.entities[c.Name] = c
	}
	return r
}

// Get returns the configuration for name or NOT_FOUND.
func (r *Registry) Get(name string) (EntityConfig, error) {
	c, ok := r.entities[name]
	if !ok {
		return EntityConfig{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown admin entity "+name)
	}
	return c, nil
}

// Entities lists every configuration sorted by name.
func (r *Registry) Entities() []EntityConfig {
	out := make([]EntityConfig, 0, len(r.entities))
	for _, c := range r.entities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func DefaultRegistry() *Registry {
	return NewRegistry(
		EntityConfig{
			Name:         EntityCategories,
			Title:        "Categories",
			ListDisplay:  []string{"name", "is_active"},
			SearchFields: []string{"name"},
			Prepopulated: map[string][]string{"slug": {"name"}},
			Fieldsets: []Fieldset{
				{Title: "Basic Information", Fields: []string{"name", "slug", "is_active"}},
				{Title: "Category Details", Fields: []string{"description", "image_url"}},
			},
		},
		EntityConfig{
			Name:  EntityProducts,
			Title: "Products",
			ListDisplay: []string{
				"name", "category", "new_price", "discount_percentage",
				"has_variants", "is_active", "created_at",
			},
			ListFilters:  []string{"category", "is_active", "created_at"},
			SearchFields: []string{"name", "description"},
			Prepopulated: map[string][]string{"slug": {"name"}},
			Fieldsets: []Fieldset{
				{Title: "Basic Information", Fields: []string{"category", "name", "slug", "description", "is_active"}},
				{Title: "Pricing (used only if NO variants)", Fields: []string{"old_price", "new_price"}},
				{Title: "Product Image (External URL)", Fields: []string{"image_url"}},
			},
			Inlines: []Inline{{
				Entity:         EntityVariants,
				Fields:         []string{"name", "image_url", "old_price", "new_price", "stock", "is_active"},
				Extra:          1,
				ShowChangeLink: true,
			}},
		},
		EntityConfig{
			Name:         EntityVariants,
			Title:        "Product variants",
			ListDisplay:  []string{"product", "name", "new_price", "stock", "is_active"},
			ListFilters:  []string{"is_active"},
			SearchFields: []string{"product__name", "name"},
		},
	)
}
