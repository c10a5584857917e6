// Package catalog wires the command and query handlers into a dispatcher.
package catalog

import (
	"fmt"

	"github.com/mkostin/catalog_service/internal/catalog/command"
	"github.com/mkostin/catalog_service/internal/catalog/cqrs"
	"github.com/mkostin/catalog_service/internal/catalog/query"
	"github.com/mkostin/catalog_service/internal/catalog/store"
)

// RegisterHandlers binds every catalog intent to its handler. Called once at
// startup; the dispatcher is immutable afterwards.
func RegisterHandlers(d *cqrs.Dispatcher, s store.ProductStore) error {
	registrations := []struct {
		name    string
		handler cqrs.HandlerFunc
	}{
		{command.CreateProduct{}.IntentName(), cqrs.Adapt(command.NewCreateHandler(s).Handle)},
		{command.UpdateProduct{}.IntentName(), cqrs.Adapt(command.NewUpdateHandler(s).Handle)},
		{command.DeleteProduct{}.IntentName(), cqrs.Adapt(command.NewDeleteHandler(s).Handle)},
		{query.FindOneProduct{}.IntentName(), cqrs.Adapt(query.NewFindOneHandler(s).Handle)},
		{query.FindAllProducts{}.IntentName(), cqrs.Adapt(query.NewFindAllHandler(s).Handle)},
		{query.ValidateProducts{}.IntentName(), cqrs.Adapt(query.NewValidateBatchHandler(s).Handle)},
	}
	for _, r := range registrations {
		if err := d.Register(r.name, r.handler); err != nil {
			return fmt.Errorf("failed to register catalog handlers: %w", err)
		}
	}
	return nil
}
