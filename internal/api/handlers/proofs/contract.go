package proofs

import "context"

type ProofStore interface {
	Open(ctx context.Context, key string) ([]byte, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
