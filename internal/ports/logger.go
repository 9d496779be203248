package ports

import "context"

// Logger: минимальный контракт логгера для конвейера и внешних слоёв.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
