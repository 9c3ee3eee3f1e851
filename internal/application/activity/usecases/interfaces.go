package usecases

import "context"

type ListActivityExecutor interface {
	Execute(ctx context.Context, q ListActivityQuery) (*ListActivityResult, error)
}

type StreamAccessExecutor interface {
	Execute(ctx context.Context, q StreamAccessQuery) (uint, error)
}
