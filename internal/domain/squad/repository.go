package squad

import "context"

// Repository persists squads together with the league-wide ownership index
// (player id -> owning manager id). Implementations must keep squad
// membership and the index in step within a single call: AddMember and
// SwapMember either fully apply or leave both untouched.
type Repository interface {
	GetByManager(ctx context.Context, managerID string) (Squad, bool, error)
	List(ctx context.Context) ([]Squad, error)

	// OwnerOf resolves the ownership index, never a squad scan.
	OwnerOf(ctx context.Context, playerID string) (string, bool, error)

	AddMember(ctx context.Context, managerID string, member Member) error
	SwapMember(ctx context.Context, managerID string, out, in Member) error
}
