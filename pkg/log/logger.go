package log

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type ctxKey string

const (
	ConnIDKey    ctxKey = "ConnID"
	RequestIDKey ctxKey = "ReqID"
)

func ctxToString(ctx context.Context) string {
	var tags []string
	if connID := ctx.Value(ConnIDKey); connID != nil {
		tags = append(tags, fmt.Sprintf("conn=%v", connID))
	}
	if reqID := ctx.Value(RequestIDKey); reqID != nil {
		tags = append(tags, fmt.Sprintf("req=%v", reqID))
	}
	return fmt.Sprintf("[%s]", strings.Join(tags, ","))
}

func Println(l Loggable, args ...interface{}) {
	allArgs := append([]interface{}{ctxToString(l.Ctx())}, args...)
	log.Println(allArgs...)
}

func Printf(l Loggable, format string, args ...interface{}) {
	log.Printf("%s %s", ctxToString(l.Ctx()), fmt.Sprintf(format, args...))
}

// Loggable is anything carrying tags for its log lines.
type Loggable interface {
	Ctx() context.Context
}

type background struct {
	ctx context.Context
}

func (b background) Ctx() context.Context {
	return b.ctx
}

// WithContext makes a bare context loggable.
func WithContext(ctx context.Context) Loggable {
	return background{ctx: ctx}
}
