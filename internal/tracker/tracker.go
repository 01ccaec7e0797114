// Package tracker implements the domain mutators: the add/remove/
// toggle operations scoped to one collection each. Every mutation
// follows the same read-all / mutate / write-all contract against the
// Collection Store and, on success, announces itself on the optional
// event client.
package tracker

import (
	"context"
	"log/slog"

	"cruscotto/internal/amqp"
)

// publishChange announces a successful mutation. Event publishing is
// best effort: the data is already persisted, so a publish failure is
// logged and swallowed rather than failing the request.
func publishChange(ctx context.Context, events *amqp.Client, collection, op string, id int64) {
	if events == nil {
		return
	}
	if err := events.PublishCollectionChanged(ctx, collection, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"collection", collection, "op", op, "id", id, "error", err)
	}
}
