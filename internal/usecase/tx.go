package usecase

import "context"

// TxRunner scopes a function to a single storage transaction so a failure
// anywhere inside rolls back every write. Backends without transactional
// semantics run the function directly.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type noopTxRunner struct{}

func (noopTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
