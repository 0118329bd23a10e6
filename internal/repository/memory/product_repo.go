package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/DRSN-tech/catalog/internal/domain"
)

// ProductRepo — хранилище товаров в памяти процесса.
// ID выдаются монотонно и никогда не переиспользуются, в том числе после удаления.
type ProductRepo struct {
	mu              sync.RWMutex
	lastID          int64
	products        map[int64]domain.Product
	caseInsensitive bool
}

func NewProductRepo(caseInsensitive bool) *ProductRepo {
	return &ProductRepo{
		products:        make(map[int64]domain.Product),
		caseInsensitive: caseInsensitive,
	}
}

func (r *ProductRepo) FindAll(_ context.Context, filter string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if r.matches(p.Name, filter) {
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	return &p, nil
}

func (r *ProductRepo) Insert(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := *product
	stored.ID = r.lastID
	r.products[stored.ID] = stored

	return &stored, nil
}

func (r *ProductRepo) Update(_ context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	p.Apply(in)
	r.products[id] = p

	return &p, nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}

	delete(r.products, id)
	return true, nil
}

func (r *ProductRepo) matches(name, filter string) bool {
	if filter == "" {
		return true
	}

	if r.caseInsensitive {
		return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
	}

	return strings.Contains(name, filter)
}
