package storagelog

import (
	"go.uber.org/zap"
)

// headMsg is a distinctive part of all messages.
const headMsg = "scull store operation"

// Write writes message about store's operation to logger at debug level.
func Write(logger *zap.Logger, fields ...zap.Field) {
	logger.Debug(headMsg, fields...)
}

// OpField returns logger's field for operation type.
func OpField(op string) zap.Field {
	return zap.String("op", op)
}

// OffsetField returns logger's field for the byte offset of the operation.
func OffsetField(off uint64) zap.Field {
	return zap.Uint64("offset", off)
}

// LengthField returns logger's field for the requested transfer length.
func LengthField(n int) zap.Field {
	return zap.Int("length", n)
}

// CountField returns logger's field for the number of bytes transferred.
func CountField(n int) zap.Field {
	return zap.Int("count", n)
}
