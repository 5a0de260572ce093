// Package txn runs multi-document writes inside a Mongo transaction,
// falling back to a plain sequential apply on deployments that do not
// support transactions (standalone servers, old DocDB).
//
// The approval engine uses Run for its submission+member write pair so
// a crash between the two writes cannot silently lose a point award on
// replica-set deployments; on standalone servers the sequential apply
// matches the original single-process behavior.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn transactionally when the server supports it. When
// transaction support is missing, fn is re-run once against the plain
// context (the aborted transactional attempt has no visible effects).
func Run(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("mongo sessions unavailable, applying writes sequentially", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Warn("mongo transactions unsupported, applying writes sequentially", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate missing transaction support.
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (as opposed to a transient or logical
// failure inside one).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if ce, ok := err.(mongo.CommandError); ok {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	has := func(sub string) bool { return strings.Contains(msg, sub) }

	if has("illegal operation") {
		return true
	}
	if has("transaction") && (has("replica set") || has("session")) {
		return true
	}
	if has("session") && has("not supported") {
		return true
	}
	return false
}
