package gameweek

import "context"

// Repository persists the cursor and immutable settlements. Advance stores
// the settlement and moves the cursor in one call; it must reject a
// settlement for any gameweek at or below the last settled one.
type Repository interface {
	GetState(ctx context.Context) (State, error)
	PutState(ctx context.Context, state State) error

	GetSettlement(ctx context.Context, gw int) (Settlement, bool, error)
	ListSettlements(ctx context.Context) ([]Settlement, error)
	Advance(ctx context.Context, settlement Settlement, next State) error
}
