package commands

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// orderActionDeps bundles the collaborators every lifecycle mutation needs.
// The mutate helper runs the shared choreography once: resolve the actor,
// serialize on the order id, load, apply, persist, commit, then dispatch
// the events the mutation produced.
type orderActionDeps struct {
	uowFactory OrderUoWFactory
	actors     ports.ActorRegistry
	locks      OrderLocker
	dispatcher EventDispatcher
}

func (d orderActionDeps) mutate(
	ctx context.Context,
	orderID kernel.UUID,
	actorID kernel.UUID,
	apply func(aggregate *order.Order, actor ports.Actor) error,
) error {
	actor, err := d.actors.Resolve(ctx, actorID)
	if err != nil {
		return err
	}

	if d.locks != nil {
		key := orderID.String()
		d.locks.Lock(key)
		defer d.locks.Unlock(key)
	}

	uow := d.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = apply(aggregate, actor); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if d.dispatcher != nil {
		d.dispatcher.Dispatch(ctx, aggregate.TakeEvents())
	}
	return nil
}
