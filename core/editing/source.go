package editing

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/fallback"
)

var ErrNotFound = errors.New("entity not found")

// Source names reported by Controller.SourceName.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Entity is anything an editing screen manipulates. WithID returns a
// copy carrying the given identifier; it keeps local creates free of
// pointer juggling.
type Entity[T any] interface {
	EntityID() string
	WithID(id string) T
}

// Source is where one screen's list lives: the remote API or the local
// fallback store. A screen picks its source once, at mount time.
type Source[T Entity[T]] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Paths names the remote resource endpoints for one entity.
type Paths struct {
	List   string
	Create string
	Item   func(id string) string // update & delete target
}

// Remote reads and writes through the API gateway client.
type Remote[T Entity[T]] struct {
	client   *api.Client
	token    string
	paths    Paths
	listKeys []string // response envelope keys holding the list
	itemKeys []string // response envelope keys holding a single item
}

var _ Source[noEntity] = (*Remote[noEntity])(nil)

func NewRemote[T Entity[T]](client *api.Client, token string, paths Paths, listKeys, itemKeys []string) *Remote[T] {
	return &Remote[T]{client: client, token: token, paths: paths, listKeys: listKeys, itemKeys: itemKeys}
}

func (src *Remote[T]) Name() string { return SourceRemote }

func (src *Remote[T]) List(ctx context.Context) ([]T, error) {
	resp, err := src.client.Request(ctx, src.paths.List, api.Options{Token: src.token})
	if err != nil {
		return nil, err
	}
	return api.List[T](resp, src.listKeys...)
}

func (src *Remote[T]) Create(ctx context.Context, item T) (T, error) {
	resp, err := src.client.Request(ctx, src.paths.Create, api.Options{
		Method: http.MethodPost,
		Body:   item,
		Token:  src.token,
	})
	if err != nil {
		return item, err
	}
	return src.echoOrSubmitted(resp, item), nil
}

func (src *Remote[T]) Update(ctx context.Context, id string, item T) (T, error) {
	resp, err := src.client.Request(ctx, src.paths.Item(id), api.Options{
		Method: http.MethodPut,
		Body:   item,
		Token:  src.token,
	})
	if err != nil {
		return item, err
	}
	return src.echoOrSubmitted(resp, item.WithID(id)), nil
}

func (src *Remote[T]) Delete(ctx context.Context, id string) error {
	_, err := src.client.Request(ctx, src.paths.Item(id), api.Options{
		Method: http.MethodDelete,
		Token:  src.token,
	})
	return err
}

// echoOrSubmitted prefers the server's returned shape, falling back to
// the submitted one when the server echoes nothing usable.
func (src *Remote[T]) echoOrSubmitted(resp api.Response, submitted T) T {
	echoed, err := api.Object[T](resp, src.itemKeys...)
	if err != nil || echoed.EntityID() == "" {
		return submitted
	}
	return echoed
}

// Local reads and writes the fallback store, letting the screens run
// against an ephemeral, per-profile dataset that never touches the
// network.
type Local[T Entity[T]] struct {
	list *fallback.List[T]
}

var _ Source[noEntity] = (*Local[noEntity])(nil)

func NewLocal[T Entity[T]](list *fallback.List[T]) *Local[T] {
	return &Local[T]{list: list}
}

func (src *Local[T]) Name() string { return SourceLocal }

func (src *Local[T]) List(ctx context.Context) ([]T, error) {
	return src.list.Items()
}

// Create assigns a creation-timestamp identifier and prepends the item.
func (src *Local[T]) Create(ctx context.Context, item T) (T, error) {
	items, err := src.list.Items()
	if err != nil {
		return item, err
	}
	item = item.WithID(strconv.FormatInt(time.Now().UnixMilli(), 10))
	items = append([]T{item}, items...)
	return item, src.list.Set(items)
}

func (src *Local[T]) Update(ctx context.Context, id string, item T) (T, error) {
	items, err := src.list.Items()
	if err != nil {
		return item, err
	}
	item = item.WithID(id)
	for i := range items {
		if items[i].EntityID() == id {
			items[i] = item
			return item, src.list.Set(items)
		}
	}
	return item, errors.Wrapf(ErrNotFound, "updating %q", id)
}

func (src *Local[T]) Delete(ctx context.Context, id string) error {
	items, err := src.list.Items()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	return src.list.Set(kept)
}

// noEntity pins the Source interface checks above.
type noEntity struct{}

func (noEntity) EntityID() string        { return "" }
func (noEntity) WithID(string) noEntity  { return noEntity{} }
