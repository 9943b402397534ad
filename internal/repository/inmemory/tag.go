package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/flexprice/taxengine/internal/domain/tag"
	ierr "github.com/flexprice/taxengine/internal/errors"
)

// TagRepository is an in-memory tag.Repository keyed by field name and
// object id. It needs the invoice repository to resolve which items belong
// to an account.
type TagRepository struct {
	mu       sync.RWMutex
	tags     map[string]*tag.Tag
	invoices *InvoiceRepository
}

func NewTagRepository(invoices *InvoiceRepository) *TagRepository {
	return &TagRepository{
		tags:     make(map[string]*tag.Tag),
		invoices: invoices,
	}
}

// Clear removes all tags
func (r *TagRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = make(map[string]*tag.Tag)
}

func tagKey(fieldName, objectID string) string {
	return fieldName + ":" + objectID
}

func (r *TagRepository) Get(ctx context.Context, fieldName, objectID string) (*tag.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tags[tagKey(fieldName, objectID)]
	if !ok {
		return nil, ierr.NewError("tag not found").
			WithHintf("No %s tag on object %s", fieldName, objectID).
			Mark(ierr.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (r *TagRepository) Create(ctx context.Context, t *tag.Tag) error {
	if t == nil || t.FieldName == "" || t.ObjectID == "" {
		return ierr.NewError("tag is incomplete").
			WithHint("Tag must carry a field name and an object id").
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := tagKey(t.FieldName, t.ObjectID)
	if _, exists := r.tags[key]; exists {
		return ierr.NewError("tag already exists").
			WithHintf("A %s tag already exists on object %s", t.FieldName, t.ObjectID).
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *t
	r.tags[key] = &copied
	return nil
}

func (r *TagRepository) Upsert(ctx context.Context, t *tag.Tag) error {
	if t == nil || t.FieldName == "" || t.ObjectID == "" {
		return ierr.NewError("tag is incomplete").
			WithHint("Tag must carry a field name and an object id").
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *t
	r.tags[tagKey(t.FieldName, t.ObjectID)] = &copied
	return nil
}

func (r *TagRepository) ListByAccountItems(ctx context.Context, accountID string) ([]*tag.Tag, error) {
	invoices, err := r.invoices.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	itemIDs := make(map[string]struct{})
	for _, inv := range invoices {
		for _, item := range inv.Items {
			itemIDs[item.ID] = struct{}{}
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*tag.Tag
	for _, t := range r.tags {
		if _, ok := itemIDs[t.ObjectID]; ok {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ObjectID < result[j].ObjectID
	})
	return result, nil
}

var _ tag.Repository = (*TagRepository)(nil)
